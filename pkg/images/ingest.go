package images

import (
	"fmt"
	"sync"
)

// UploadResult is the per-file outcome of a batch ingestion.
type UploadResult struct {
	URL              string  `json:"url"`
	Filename         string  `json:"filename"`
	Size             int64   `json:"size"`
	OriginalSize     int64   `json:"originalSize"`
	MediaType        string  `json:"type"`
	Compressed       bool    `json:"compressed"`
	CompressionRatio float64 `json:"compressionRatio"`
	Error            string  `json:"error,omitempty"`
}

// Ingestor runs validate, compress, name and store for one request's batch.
type Ingestor struct {
	policy Policy
	store  *DiskStore
	prefix string // public URL prefix, e.g. "/images/"
}

func NewIngestor(policy Policy, store *DiskStore, publicPrefix string) *Ingestor {
	return &Ingestor{policy: policy, store: store, prefix: publicPrefix}
}

// Policy returns the policy the ingestor was constructed with.
func (in *Ingestor) Policy() Policy { return in.policy }

// Ingest processes a batch of candidates. Validation is all-or-nothing: any
// invalid file rejects the whole batch before a single byte is written, so
// clients never see partial uploads. Past validation the files proceed
// concurrently and settle independently; results keep input order. Store
// failures become per-item errors, compression failures degrade to the
// original bytes.
func (in *Ingestor) Ingest(batch []UploadCandidate) ([]UploadResult, error) {
	if len(batch) == 0 {
		return nil, &ValidationError{Reason: "no files provided"}
	}
	if len(batch) > in.policy.MaxFiles {
		return nil, &ValidationError{Reason: fmt.Sprintf("too many files (max %d)", in.policy.MaxFiles)}
	}
	for _, c := range batch {
		if err := Validate(c, in.policy); err != nil {
			return nil, err
		}
	}

	results := make([]UploadResult, len(batch))
	var wg sync.WaitGroup
	for i, c := range batch {
		wg.Add(1)
		go func(i int, c UploadCandidate) {
			defer wg.Done()
			results[i] = in.ingestOne(c)
		}(i, c)
	}
	wg.Wait()
	return results, nil
}

func (in *Ingestor) ingestOne(c UploadCandidate) UploadResult {
	out := Compress(c.Data, c.MediaType, in.policy)
	name := NewFilename(c.Name, out.Ext)
	res := UploadResult{
		URL:          in.prefix + name,
		Filename:     name,
		Size:         int64(len(out.Data)),
		OriginalSize: int64(len(c.Data)),
		MediaType:    ContentTypeFor(name),
		Compressed:   len(out.Data) < len(c.Data),
	}
	if res.OriginalSize > 0 {
		res.CompressionRatio = float64(res.Size) / float64(res.OriginalSize)
	}
	if err := in.store.Put(name, out.Data); err != nil {
		res.Error = err.Error()
		res.URL = ""
	}
	return res
}
