// Package images implements the image ingestion pipeline: upload validation,
// size-targeted compression, collision-resistant naming, disk storage and
// cleanup of files orphaned by post edits and deletes.
package images

// UploadCandidate is one inbound file before any processing. The declared
// metadata comes straight from the request and is never trusted beyond
// validation.
type UploadCandidate struct {
	Name      string // original display name, untrusted
	MediaType string // declared content type
	Size      int64  // declared byte length
	Data      []byte
}

// Policy holds the deployment-time tunables of the pipeline.
// Invariants: TargetBytes < MaxUploadBytes, QualityFloor < QualityCeiling.
type Policy struct {
	MaxUploadBytes int64 // hard cap on accepted input
	TargetBytes    int64 // soft post-compression budget
	MaxDimension   int   // longest edge after resizing
	MinDimension   int   // never shrink the longest edge below this
	QualityFloor   int
	QualityCeiling int
	QualityStep    int
	MaxIterations  int
	MaxFiles       int // per-batch file cap
}

// DefaultPolicy returns the production defaults: 5 MiB hard max, 2 MiB
// target, 1920 px longest edge.
func DefaultPolicy() Policy {
	return Policy{
		MaxUploadBytes: 5 * 1024 * 1024,
		TargetBytes:    2 * 1024 * 1024,
		MaxDimension:   1920,
		MinDimension:   320,
		QualityFloor:   40,
		QualityCeiling: 85,
		QualityStep:    10,
		MaxIterations:  6,
		MaxFiles:       5,
	}
}
