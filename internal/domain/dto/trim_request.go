package dto

// TrimRequest asks for a derived clip of an existing video.
type TrimRequest struct {
	StartSeconds float64 `json:"startSeconds"`
	EndSeconds   float64 `json:"endSeconds"`
}

func (r TrimRequest) Valid() bool {
	return r.StartSeconds >= 0 && r.EndSeconds > r.StartSeconds
}
