package images

import (
	"strings"
	"sync"
	"testing"
)

func TestNewFilenameSafe(t *testing.T) {
	cases := []string{
		"holiday photo.jpg",
		"../../etc/passwd",
		"a/b/c.png",
		"..\\..\\windows\\system32",
		"üñïçödé névé.jpeg",
		"",
		strings.Repeat("x", 500) + ".jpg",
	}
	for _, orig := range cases {
		name := NewFilename(orig, "jpg")
		if !SafeFilename(name) {
			t.Errorf("NewFilename(%q) = %q is not path safe", orig, name)
		}
		if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
			t.Errorf("NewFilename(%q) = %q contains separators", orig, name)
		}
		if !strings.HasSuffix(name, ".jpg") {
			t.Errorf("NewFilename(%q) = %q missing extension", orig, name)
		}
	}
}

func TestNewFilenameConcurrentUniqueness(t *testing.T) {
	const n = 10000
	names := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i] = NewFilename("pic.jpg", "jpg")
		}(i)
	}
	wg.Wait()
	seen := make(map[string]struct{}, n)
	for _, name := range names {
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate filename %q", name)
		}
		seen[name] = struct{}{}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Holiday Photo", "holiday-photo"},
		{"a__b..c", "a-b-c"},
		{"---", ""},
		{"CAPS123", "caps123"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
