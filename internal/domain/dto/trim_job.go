package dto

import "encoding/json"

// TrimJob is the broker payload asking the worker to cut a clip out of an
// existing video and attach the result to a pre-created derived asset.
type TrimJob struct {
	SourceAssetID  string  `json:"sourceAssetId"`
	DerivedAssetID string  `json:"derivedAssetId"`
	StartSeconds   float64 `json:"startSeconds"`
	EndSeconds     float64 `json:"endSeconds"`
}

func (j TrimJob) Encode() (string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func DecodeTrimJob(body string) (TrimJob, error) {
	var j TrimJob
	if err := json.Unmarshal([]byte(body), &j); err != nil {
		return TrimJob{}, err
	}

	return j, nil
}
