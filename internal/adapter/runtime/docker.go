package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DockerRuntime talks to the local Docker daemon through the docker CLI.
type DockerRuntime struct{}

func NewDocker() *DockerRuntime {
	return &DockerRuntime{}
}

// ContainerRunning lists running containers filtered by name and requires
// an exact match: the name filter alone is a substring match, so the
// output is checked line by line.
func (d *DockerRuntime) ContainerRunning(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, "docker", "ps",
		"--filter", fmt.Sprintf("name=^%s$", name),
		"--format", "{{.Names}}",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("docker ps failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == name {
			return true, nil
		}
	}

	return false, nil
}

func (d *DockerRuntime) Exec(ctx context.Context, container string, stdout io.Writer, command ...string) error {
	args := append([]string{"exec", container}, command...)
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker exec in %s failed: %w, stderr: %s",
			container, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
