package images

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxSlugLen = 48

// NewFilename builds a path-safe storage name from an untrusted display
// name: sanitized slug, millisecond timestamp and a random token, joined
// with the resolved extension. The timestamp/token pair makes names unique
// across concurrent callers without any shared counter.
func NewFilename(original, ext string) string {
	slug := slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if slug == "" {
		slug = "image"
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s.%s", slug, time.Now().UnixMilli(), token, ext)
}

// slugify lowercases and keeps ASCII alphanumerics, collapsing every other
// run of characters into a single dash.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if b.Len() >= maxSlugLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
