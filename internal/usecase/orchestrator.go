package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

// Orchestrator runs the per-target backup sequence: availability check,
// dump, validation, then pruning. One target failing never stops the
// targets after it.
type Orchestrator struct {
	targets      []domain.Target
	availability *Availability
	dumper       *Dumper
	validator    *Validator
	pruner       *Pruner
	retention    domain.RetentionPolicy
	logger       Logger
	backupDir    string
	now          func() time.Time
}

func NewOrchestrator(
	targets []domain.Target,
	availability *Availability,
	dumper *Dumper,
	validator *Validator,
	pruner *Pruner,
	retention domain.RetentionPolicy,
	logger Logger,
	backupDir string,
	now func() time.Time,
) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		targets:      targets,
		availability: availability,
		dumper:       dumper,
		validator:    validator,
		pruner:       pruner,
		retention:    retention,
		logger:       logger,
		backupDir:    backupDir,
		now:          now,
	}
}

// Run processes every configured target once and returns the run report.
// The caller translates Stats.Failure into the process exit code.
func (o *Orchestrator) Run(ctx context.Context) domain.RunReport {
	start := o.now()
	stats := domain.RunStatistics{Total: len(o.targets)}
	var artifacts []domain.Artifact

	for _, target := range o.targets {
		o.logger.Infof("--- Processing target %s ---", target.Name)

		artifact, err := o.processTarget(ctx, target)
		if err != nil {
			o.logger.Errorf("[%s] Backup failed: %v", target.Name, err)
			stats.Failure++
			continue
		}

		stats.Success++
		artifacts = append(artifacts, artifact)

		// Only a successful run sweeps its own retention window; stale
		// backups of a failing target are left alone this cycle.
		if _, err := o.pruner.Prune(target.Name, o.retention); err != nil {
			o.logger.Warnf("[%s] Pruning failed: %v", target.Name, err)
		}
	}

	o.sweepLegacy()

	o.logger.Infof("Run finished: %d target(s), %d succeeded, %d failed",
		stats.Total, stats.Success, stats.Failure)

	return domain.RunReport{
		Stats:     stats,
		Artifacts: artifacts,
		Duration:  o.now().Sub(start),
	}
}

func (o *Orchestrator) processTarget(ctx context.Context, target domain.Target) (domain.Artifact, error) {
	if !o.availability.CheckExists(ctx, target.Name) {
		return domain.Artifact{}, fmt.Errorf("%s: %w", target.Name, domain.ErrTargetNotFound)
	}
	if !o.availability.CheckReady(ctx, target) {
		return domain.Artifact{}, fmt.Errorf("%s: %w", target.Name, domain.ErrServiceNotReady)
	}

	path, err := o.dumper.Dump(ctx, target)
	if err != nil {
		return domain.Artifact{}, err
	}

	size, err := o.validator.Validate(path)
	if err != nil {
		return domain.Artifact{}, err
	}

	return domain.Artifact{
		TargetName: target.Name,
		FilePath:   path,
		SizeBytes:  size,
		CreatedAt:  o.now(),
	}, nil
}

// legacyArtifactSuffix is the suffix the pre-rewrite job always wrote.
// It is frozen on purpose: legacy files keep their historical names even
// if the live pipeline is wired with a different codec.
const legacyArtifactSuffix = ".sql.gz"

// sweepLegacy removes aged artifacts written by the pre-rewrite job,
// which named files backup-*.sql.gz without a target prefix. Best
// effort, no count kept.
func (o *Orchestrator) sweepLegacy() {
	cutoff := o.retention.Cutoff(o.now())

	entries, err := os.ReadDir(o.backupDir)
	if err != nil {
		o.logger.Warnf("Legacy sweep skipped, cannot read %s: %v", o.backupDir, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "backup-") || !strings.HasSuffix(name, legacyArtifactSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(o.backupDir, name)
		if err := os.Remove(path); err != nil {
			o.logger.Warnf("Legacy sweep failed to delete %s: %v", name, err)
			continue
		}
		o.logger.Infof("Legacy sweep deleted %s", name)
	}
}
