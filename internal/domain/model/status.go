package model

// Status is the lifecycle state of an asset.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
	StatusArchived   Status = "archived"
)

// StatusAny is the zero value and means "no status filter" in queries.
const StatusAny Status = ""

func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusReady, StatusError, StatusArchived:
		return true
	}

	return false
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. Archived is terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusProcessing:
		return next == StatusReady || next == StatusError
	case StatusReady:
		return next == StatusError || next == StatusArchived
	case StatusError:
		return next == StatusArchived
	case StatusArchived:
		return false
	}

	return false
}
