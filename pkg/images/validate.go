package images

import "fmt"

// allowedTypes maps accepted media types to their canonical file extension.
// Anything not listed here is rejected, never reclassified.
var allowedTypes = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// Validate checks a candidate against the type/size policy. It inspects
// declared metadata only and has no side effects.
func Validate(c UploadCandidate, p Policy) error {
	if _, ok := allowedTypes[c.MediaType]; !ok {
		return &ValidationError{Reason: fmt.Sprintf("unsupported file type %q (must be an image)", c.MediaType)}
	}
	if c.Size <= 0 {
		return &ValidationError{Reason: "empty file"}
	}
	if c.Size > p.MaxUploadBytes {
		return &ValidationError{Reason: fmt.Sprintf("file too large (max %d bytes)", p.MaxUploadBytes)}
	}
	return nil
}

// ExtensionFor returns the canonical extension for an allowed media type.
func ExtensionFor(mediaType string) (string, bool) {
	ext, ok := allowedTypes[mediaType]
	return ext, ok
}
