package dto

import "io"

// UploadInput carries one multipart upload into the application layer. Body
// is the raw file stream; the caller never buffers it whole.
type UploadInput struct {
	Filename        string
	DeclaredMIME    string
	Body            io.Reader
	Title           string
	Description     string
	DurationSeconds int
	IsPublic        bool
}
