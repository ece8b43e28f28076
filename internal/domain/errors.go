package domain

import "errors"

// Per-target failure categories. Each one is caught at the target-processing
// boundary, logged, counted, and never aborts the rest of the run.
var (
	ErrTargetNotFound  = errors.New("target container not found")
	ErrServiceNotReady = errors.New("database service not ready")
	ErrDumpFailed      = errors.New("dump pipeline failed")
	ErrEmptyArtifact   = errors.New("artifact is empty or missing")
)
