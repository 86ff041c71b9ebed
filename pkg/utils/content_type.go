package utils

import (
	"path/filepath"
	"strings"
)

// extensionToMIME covers the formats the upload allow-lists accept, plus a
// few common neighbours so stray files still stream with a sane type.
var extensionToMIME = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// ContentTypeForFilename returns the MIME type to serve a stored file with,
// keyed by its extension. Unknown extensions fall back to a generic binary
// type rather than guessing a container.
func ContentTypeForFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mime, ok := extensionToMIME[ext]; ok {
		return mime
	}

	return "application/octet-stream"
}

// SanitizeFilename strips path separators and leading dots from a
// client-provided name so it is safe to embed in a storage key.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		return "upload"
	}

	return name
}
