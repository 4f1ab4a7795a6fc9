package images

import (
	"strings"
	"sync"
)

// Outcome classifies the cleanup result for one URL.
type Outcome string

const (
	OutcomeDeleted  Outcome = "deleted"
	OutcomeNotFound Outcome = "not_found"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeError    Outcome = "error"
)

// CleanupResult is one per-URL entry of a cleanup report.
type CleanupResult struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// CleanupReport aggregates one reconciliation pass.
type CleanupReport struct {
	Results  []CleanupResult `json:"results"`
	Deleted  int             `json:"deleted"`
	NotFound int             `json:"notFound"`
	Invalid  int             `json:"invalid"`
	Failed   int             `json:"failed"`
}

// Reconciler removes stored files that post mutations no longer reference.
// Cleanup is best-effort and strictly subordinate to the database write that
// triggered it; a cleanup failure never rolls anything back.
type Reconciler struct {
	store    *DiskStore
	prefixes []string
}

// NewReconciler accepts every public URL prefix under which stored files
// have historically been exposed.
func NewReconciler(store *DiskStore, prefixes ...string) *Reconciler {
	return &Reconciler{store: store, prefixes: prefixes}
}

// Diff returns the URLs present in old but absent from updated, compared by
// exact string.
func Diff(old, updated []string) []string {
	keep := make(map[string]struct{}, len(updated))
	for _, u := range updated {
		keep[u] = struct{}{}
	}
	var gone []string
	for _, u := range old {
		if _, ok := keep[u]; !ok {
			gone = append(gone, u)
		}
	}
	return gone
}

// FilenameFromURL strips a recognized public prefix and validates that the
// remainder is a bare filename.
func (r *Reconciler) FilenameFromURL(url string) (string, error) {
	for _, p := range r.prefixes {
		if strings.HasPrefix(url, p) {
			name := strings.TrimPrefix(url, p)
			if !SafeFilename(name) {
				return "", ErrUnsafeFilename
			}
			return name, nil
		}
	}
	return "", &ValidationError{Reason: "unrecognized image URL format"}
}

// Cleanup deletes the files behind a list of URLs. URLs settle
// independently and concurrently: one failure never cancels or delays its
// siblings, and all outcomes are collected before the report returns.
func (r *Reconciler) Cleanup(urls []string) CleanupReport {
	report := CleanupReport{Results: make([]CleanupResult, len(urls))}
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			report.Results[i] = r.cleanupOne(u)
		}(i, u)
	}
	wg.Wait()
	for _, res := range report.Results {
		switch res.Outcome {
		case OutcomeDeleted:
			report.Deleted++
		case OutcomeNotFound:
			report.NotFound++
		case OutcomeInvalid:
			report.Invalid++
		case OutcomeError:
			report.Failed++
		}
	}
	return report
}

func (r *Reconciler) cleanupOne(url string) CleanupResult {
	res := CleanupResult{URL: url}
	if url == "" {
		res.Outcome = OutcomeInvalid
		res.Detail = "empty URL"
		return res
	}
	name, err := r.FilenameFromURL(url)
	if err != nil {
		res.Outcome = OutcomeInvalid
		res.Detail = err.Error()
		return res
	}
	found, err := r.store.Delete(name)
	switch {
	case err != nil:
		res.Outcome = OutcomeError
		res.Detail = err.Error()
	case !found:
		res.Outcome = OutcomeNotFound
	default:
		res.Outcome = OutcomeDeleted
	}
	return res
}
