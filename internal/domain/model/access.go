package model

// CanRead reports whether requester may view the asset. Public assets are
// readable by anyone, private ones by their owner only.
func CanRead(requesterID string, asset *Asset) bool {
	if asset.IsPublic {
		return true
	}

	return requesterID != "" && requesterID == asset.OwnerID
}

// CanWrite reports whether requester may mutate the asset. Only the owner
// may, regardless of visibility.
func CanWrite(requesterID string, asset *Asset) bool {
	return requesterID != "" && requesterID == asset.OwnerID
}
