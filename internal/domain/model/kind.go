package model

import "strings"

// Kind separates the two asset families. Each kind has its own multipart
// field name, storage prefix, allow-lists and size ceiling.
type Kind string

const (
	KindVideo      Kind = "video"
	KindScreenshot Kind = "screenshot"
)

const (
	MaxVideoBytes      int64 = 100 << 20
	MaxScreenshotBytes int64 = 10 << 20
)

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".webm": {}, ".ogg": {},
}

var videoMIMETypes = map[string]struct{}{
	"video/mp4": {}, "video/webm": {}, "video/ogg": {},
	"application/ogg": {},
}

var screenshotExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
}

var screenshotMIMETypes = map[string]struct{}{
	"image/jpeg": {}, "image/png": {}, "image/gif": {},
}

func (k Kind) IsValid() bool {
	return k == KindVideo || k == KindScreenshot
}

// FormField is the multipart field the client must use for this kind.
func (k Kind) FormField() string {
	return string(k)
}

// StoragePrefix is the directory (or object-key prefix) blobs of this kind
// live under.
func (k Kind) StoragePrefix() string {
	if k == KindVideo {
		return "videos"
	}

	return "screenshots"
}

// MaxBytes is the upload size ceiling for the kind.
func (k Kind) MaxBytes() int64 {
	if k == KindVideo {
		return MaxVideoBytes
	}

	return MaxScreenshotBytes
}

// InitialStatus is the state a freshly uploaded asset starts in. Direct
// uploads arrive already encoded by the capture client, so both kinds start
// ready; processing is entered only by derived-asset operations.
func (k Kind) InitialStatus() Status {
	return StatusReady
}

// DefaultTitle is used when the client provides no title at creation.
func (k Kind) DefaultTitle() string {
	if k == KindVideo {
		return "Untitled Video"
	}

	return "Untitled Screenshot"
}

// AcceptsExtension reports whether the original filename's extension is on
// the kind's allow-list. The check is case-insensitive.
func (k Kind) AcceptsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	if k == KindVideo {
		_, ok := videoExtensions[ext]

		return ok
	}
	_, ok := screenshotExtensions[ext]

	return ok
}

// AcceptsMIME reports whether a declared or sniffed content type is on the
// kind's allow-list. Parameters like "; charset=" are ignored.
func (k Kind) AcceptsMIME(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0]))
	if k == KindVideo {
		_, ok := videoMIMETypes[mime]

		return ok
	}
	_, ok := screenshotMIMETypes[mime]

	return ok
}
