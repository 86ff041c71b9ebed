package entity

// PutResult describes a blob that was just written to the store.
type PutResult struct {
	Ref  string `json:"ref"`
	Size int64  `json:"size"`
}
