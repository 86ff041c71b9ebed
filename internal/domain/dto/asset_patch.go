package dto

// AssetPatch is a partial metadata update. Nil means "leave as-is"; a
// non-nil pointer is applied even when it points at the empty string.
type AssetPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// Empty reports whether the patch changes nothing.
func (p AssetPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsPublic == nil
}
