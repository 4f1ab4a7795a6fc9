package images

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return s
}

func TestStorePutGetDelete(t *testing.T) {
	s := newTestStore(t)
	data := []byte("jpeg bytes")
	if err := s.Put("a.jpg", data); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ct, err := s.Get("a.jpg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("get returned wrong bytes")
	}
	if ct != "image/jpeg" {
		t.Fatalf("content type = %q, want image/jpeg", ct)
	}
	found, err := s.Delete("a.jpg")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	if _, _, err := s.Get("a.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreDeleteMissingIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	found, err := s.Delete("never-existed.jpg")
	if err != nil {
		t.Fatalf("delete of missing file must not error, got %v", err)
	}
	if found {
		t.Fatalf("missing file reported as found")
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	// sentinel outside the root; none of the calls below may touch it
	outside := filepath.Join(filepath.Dir(s.Root()), "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../secret.txt", "../../etc/passwd", "a/b.jpg", "a\\b.jpg", "..", ".", ""} {
		if err := s.Put(name, []byte("x")); !errors.Is(err, ErrUnsafeFilename) {
			t.Errorf("Put(%q): want ErrUnsafeFilename, got %v", name, err)
		}
		if _, _, err := s.Get(name); !errors.Is(err, ErrUnsafeFilename) {
			t.Errorf("Get(%q): want ErrUnsafeFilename, got %v", name, err)
		}
		if _, err := s.Delete(name); !errors.Is(err, ErrUnsafeFilename) {
			t.Errorf("Delete(%q): want ErrUnsafeFilename, got %v", name, err)
		}
		if s.Exists(name) {
			t.Errorf("Exists(%q): must be false", name)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("sentinel outside root was touched: %v", err)
	}
}

func TestStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "uploads")
	if _, err := NewDiskStore(root); err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := []struct{ name, want string }{
		{"a.jpg", "image/jpeg"},
		{"a.JPEG", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.webp", "image/webp"},
		{"a.gif", "image/gif"},
		{"a.svg", "image/svg+xml"},
		{"noext", "image/jpeg"},
	}
	for _, tc := range cases {
		if got := ContentTypeFor(tc.name); got != tc.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
