package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

// Pruner deletes a target's artifacts once they age past the retention
// window. It never touches files belonging to other targets.
type Pruner struct {
	logger    Logger
	backupDir string
	suffix    string
	now       func() time.Time
}

// NewPruner builds a pruner matching artifacts written with the given
// compression extension, so its pattern always agrees with the dumper's.
func NewPruner(logger Logger, backupDir, compressExt string, now func() time.Time) *Pruner {
	if now == nil {
		now = time.Now
	}
	return &Pruner{
		logger:    logger,
		backupDir: backupDir,
		suffix:    ArtifactSuffix(compressExt),
		now:       now,
	}
}

// Prune deletes artifacts named {target}-backup-* with the configured
// suffix whose mtime is strictly older than the cutoff and returns the
// number deleted. Zero matches is a normal outcome.
func (p *Pruner) Prune(targetName string, policy domain.RetentionPolicy) (int, error) {
	cutoff := policy.Cutoff(p.now())
	prefix := targetName + "-backup-"

	entries, err := os.ReadDir(p.backupDir)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, p.suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			p.logger.Warnf("[%s] Failed to stat %s: %v", targetName, name, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(p.backupDir, name)
		if err := os.Remove(path); err != nil {
			p.logger.Errorf("[%s] Failed to delete old artifact %s: %v", targetName, name, err)
			continue
		}
		deleted++
	}

	p.logger.Infof("[%s] Deleted %d old artifact(s), retention: %d days", targetName, deleted, policy.MaxAgeDays)
	return deleted, nil
}
