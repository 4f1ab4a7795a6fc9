package images

import (
	"os"
	"strings"
	"testing"
)

func newTestIngestor(t *testing.T) (*Ingestor, *DiskStore) {
	t.Helper()
	s := newTestStore(t)
	return NewIngestor(testPolicy(), s, "/images/"), s
}

func candidate(t *testing.T, name string, data []byte, mediaType string) UploadCandidate {
	t.Helper()
	return UploadCandidate{Name: name, MediaType: mediaType, Size: int64(len(data)), Data: data}
}

func storedCount(t *testing.T, s *DiskStore) int {
	t.Helper()
	entries, err := os.ReadDir(s.Root())
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	return len(entries)
}

func TestIngestSingleFile(t *testing.T) {
	in, s := newTestIngestor(t)
	data := noiseJPEG(t, 100, 60, 75)
	results, err := in.Ingest([]UploadCandidate{candidate(t, "My Photo.jpg", data, "image/jpeg")})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	r := results[0]
	if r.Error != "" {
		t.Fatalf("unexpected item error: %s", r.Error)
	}
	if !strings.HasPrefix(r.URL, "/images/") {
		t.Fatalf("url = %q", r.URL)
	}
	if r.OriginalSize != int64(len(data)) {
		t.Fatalf("originalSize = %d, want %d", r.OriginalSize, len(data))
	}
	if !s.Exists(r.Filename) {
		t.Fatalf("stored file %q missing", r.Filename)
	}
	if r.CompressionRatio <= 0 || r.CompressionRatio > 1 {
		t.Fatalf("compressionRatio = %v", r.CompressionRatio)
	}
}

func TestIngestCompressesOversized(t *testing.T) {
	in, _ := newTestIngestor(t)
	p := in.Policy()
	data := noiseJPEG(t, 1000, 700, 95)
	if int64(len(data)) <= p.TargetBytes || int64(len(data)) > p.MaxUploadBytes {
		t.Fatalf("fixture is %d bytes, need between target %d and max %d", len(data), p.TargetBytes, p.MaxUploadBytes)
	}
	results, err := in.Ingest([]UploadCandidate{candidate(t, "big.jpg", data, "image/jpeg")})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	r := results[0]
	if !r.Compressed {
		t.Fatalf("expected compressed=true for oversized input")
	}
	if r.Size >= r.OriginalSize {
		t.Fatalf("size %d not reduced from %d", r.Size, r.OriginalSize)
	}
}

func TestIngestPreservesInputOrder(t *testing.T) {
	in, _ := newTestIngestor(t)
	small := noiseJPEG(t, 80, 60, 70)
	names := []string{"first", "second", "third", "fourth", "fifth"}
	batch := make([]UploadCandidate, len(names))
	for i, n := range names {
		batch[i] = candidate(t, n+".jpg", small, "image/jpeg")
	}
	results, err := in.Ingest(batch)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	for i, r := range results {
		if !strings.HasPrefix(r.Filename, names[i]+"-") {
			t.Fatalf("result %d filename %q does not match input %q", i, r.Filename, names[i])
		}
	}
}

func TestIngestRejectsOverCapBeforeWriting(t *testing.T) {
	in, s := newTestIngestor(t)
	small := noiseJPEG(t, 80, 60, 70)
	batch := make([]UploadCandidate, 6)
	for i := range batch {
		batch[i] = candidate(t, "f.jpg", small, "image/jpeg")
	}
	_, err := in.Ingest(batch)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("want *ValidationError for 6 files, got %v", err)
	}
	if n := storedCount(t, s); n != 0 {
		t.Fatalf("%d files written despite batch rejection", n)
	}
}

func TestIngestRejectsWholeBatchOnOneInvalidFile(t *testing.T) {
	in, s := newTestIngestor(t)
	small := noiseJPEG(t, 80, 60, 70)
	batch := []UploadCandidate{
		candidate(t, "good.jpg", small, "image/jpeg"),
		candidate(t, "bad.txt", []byte("not an image"), "text/plain"),
	}
	_, err := in.Ingest(batch)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if n := storedCount(t, s); n != 0 {
		t.Fatalf("%d files written despite validation failure", n)
	}
}

func TestIngestEmptyBatch(t *testing.T) {
	in, _ := newTestIngestor(t)
	if _, err := in.Ingest(nil); err == nil {
		t.Fatalf("empty batch must be rejected")
	}
}

func TestIngestCorruptFileStillStored(t *testing.T) {
	in, s := newTestIngestor(t)
	// over target but undecodable: compression degrades, upload succeeds
	data := make([]byte, 80*1024)
	for i := range data {
		data[i] = byte(i)
	}
	results, err := in.Ingest([]UploadCandidate{candidate(t, "broken.jpg", data, "image/jpeg")})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	r := results[0]
	if r.Error != "" {
		t.Fatalf("unexpected item error: %s", r.Error)
	}
	if r.Compressed {
		t.Fatalf("corrupt input must not report compressed")
	}
	if r.Size != r.OriginalSize {
		t.Fatalf("corrupt input must be stored unmodified")
	}
	if !s.Exists(r.Filename) {
		t.Fatalf("stored file %q missing", r.Filename)
	}
}
