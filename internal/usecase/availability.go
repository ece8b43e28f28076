package usecase

import (
	"context"
	"io"
	"time"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

// Logger is the logging surface the usecases need.
type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Availability gates dump execution: the target's container must be
// running and its database must answer a readiness probe.
type Availability struct {
	runtime domain.Runtime
	logger  Logger
	timeout time.Duration
}

func NewAvailability(runtime domain.Runtime, logger Logger, timeout time.Duration) *Availability {
	return &Availability{
		runtime: runtime,
		logger:  logger,
		timeout: timeout,
	}
}

// CheckExists reports whether a running container named exactly
// target.Name exists. Lookup failures count as absent.
func (a *Availability) CheckExists(ctx context.Context, targetName string) bool {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	running, err := a.runtime.ContainerRunning(ctx, targetName)
	if err != nil {
		a.logger.Errorf("[%s] Container lookup failed: %v", targetName, err)
		return false
	}
	if !running {
		a.logger.Warnf("[%s] Container is not running", targetName)
		return false
	}

	return true
}

// CheckReady probes the database inside the container. A non-zero exit
// status or a failed invocation both mean not ready.
func (a *Availability) CheckReady(ctx context.Context, target domain.Target) bool {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	err := a.runtime.Exec(ctx, target.Name, io.Discard, "pg_isready", "--username", target.User)
	if err != nil {
		a.logger.Errorf("[%s] Readiness probe failed: %v", target.Name, err)
		return false
	}

	return true
}
