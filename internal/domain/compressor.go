package domain

import "io"

// Compressor is the streaming filter stage of the dump pipeline.
type Compressor interface {
	// NewWriter wraps w so that bytes written to the returned writer are
	// compressed into w. The caller must Close the returned writer to
	// flush the trailer; a Close error means the artifact is incomplete.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// Extension returns the filename suffix for this codec, e.g. ".gz".
	Extension() string
}
