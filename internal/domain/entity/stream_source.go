package entity

import "io"

// StreamSource is a ready-to-send slice of a stored blob. Start and End are
// inclusive byte offsets into a blob of Size bytes; Partial distinguishes a
// ranged response from a full-body one. The caller closes Reader.
type StreamSource struct {
	Reader      io.ReadCloser
	Start       int64
	End         int64
	Size        int64
	ContentType string
	Partial     bool
}

// Length is the number of bytes Reader will yield.
func (s *StreamSource) Length() int64 {
	return s.End - s.Start + 1
}
