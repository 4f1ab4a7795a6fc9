package images

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore persists image buffers under a single flat root directory. The
// store exclusively owns the physical files; callers hold URLs only.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and probes that it is
// writable, so an unwritable deployment fails at startup instead of on the
// first upload.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Name: root, Err: err}
	}
	probe := filepath.Join(root, ".write-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return nil, &StorageError{Op: "probe", Name: root, Err: err}
	}
	_ = os.Remove(probe)
	return &DiskStore{root: root}, nil
}

// Root returns the storage root directory.
func (s *DiskStore) Root() string { return s.root }

// SafeFilename reports whether name is a bare filename: no path separators,
// no parent-directory sequences. Every store operation checks this before
// joining the name to the root; it is the sole path-traversal defense and
// must not be left to callers.
func SafeFilename(name string) bool {
	if name == "" || name == "." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}

func (s *DiskStore) path(name string) (string, error) {
	if !SafeFilename(name) {
		return "", ErrUnsafeFilename
	}
	return filepath.Join(s.root, name), nil
}

// Put writes data under name inside the root.
func (s *DiskStore) Put(name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return &StorageError{Op: "write", Name: name, Err: err}
	}
	return nil
}

// Get returns the stored bytes plus a content type inferred from the
// filename extension. Missing files yield ErrNotFound.
func (s *DiskStore) Get(name string) ([]byte, string, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", &StorageError{Op: "read", Name: name, Err: err}
	}
	return data, ContentTypeFor(name), nil
}

// Exists reports whether name is present. Advisory only: a racing delete can
// still win between this check and a later read.
func (s *DiskStore) Exists(name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Delete removes name if present. A missing file reports found=false with a
// nil error, making deletion idempotent.
func (s *DiskStore) Delete(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageError{Op: "delete", Name: name, Err: err}
	}
	return true, nil
}

// ContentTypeFor maps a filename extension to a media type, defaulting to
// JPEG the way the serving layer always has.
func ContentTypeFor(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "image/jpeg"
}
