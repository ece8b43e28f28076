package domain

import (
	"context"
	"io"
)

// Runtime abstracts the container runtime the targets live in.
type Runtime interface {
	// ContainerRunning reports whether a running container with exactly
	// this name exists. Substring matches do not count.
	ContainerRunning(ctx context.Context, name string) (bool, error)

	// Exec runs a command inside the named container, streaming its
	// standard output into stdout. A non-zero exit status is an error.
	Exec(ctx context.Context, container string, stdout io.Writer, command ...string) error
}
