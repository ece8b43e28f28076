package usecase

import (
	"context"
	"io"
)

type nopLogger struct{}

func (nopLogger) Infof(template string, args ...interface{})  {}
func (nopLogger) Errorf(template string, args ...interface{}) {}
func (nopLogger) Warnf(template string, args ...interface{})  {}

// fakeRuntime stands in for the docker CLI in tests.
type fakeRuntime struct {
	running    map[string]bool
	runningErr error
	execErr    error
	failFor    map[string]error
	outputs    map[string][]byte
	execCalls  [][]string
}

func (f *fakeRuntime) ContainerRunning(ctx context.Context, name string) (bool, error) {
	if f.runningErr != nil {
		return false, f.runningErr
	}
	return f.running[name], nil
}

func (f *fakeRuntime) Exec(ctx context.Context, container string, stdout io.Writer, command ...string) error {
	f.execCalls = append(f.execCalls, append([]string{container}, command...))
	if f.execErr != nil {
		return f.execErr
	}
	if len(command) > 0 {
		if err, ok := f.failFor[command[0]]; ok {
			return err
		}
	}
	if out, ok := f.outputs[container]; ok {
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// callsFor returns the exec invocations made against one container.
func (f *fakeRuntime) callsFor(container string) [][]string {
	var calls [][]string
	for _, call := range f.execCalls {
		if call[0] == container {
			calls = append(calls, call)
		}
	}
	return calls
}

// discardCompressor swallows everything it is given, leaving the
// artifact file empty. Used to exercise the empty-artifact path.
type discardCompressor struct{}

type discardWriteCloser struct{}

func (discardWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (discardWriteCloser) Close() error                { return nil }

func (discardCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return discardWriteCloser{}, nil
}

func (discardCompressor) Extension() string { return ".gz" }
