package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

// TimestampLayout is embedded in artifact filenames; second precision,
// colon-free so the names stay filesystem-safe.
const TimestampLayout = "2006-01-02T15-04-05"

// dumpExtension is the suffix the dump command's raw output carries
// before the compression extension is appended.
const dumpExtension = ".sql"

// ArtifactSuffix is the filename suffix shared by the dumper and the
// pruner for a given compression extension. Keeping it in one place is
// what guarantees the pruner matches what the dumper writes.
func ArtifactSuffix(compressExt string) string {
	return dumpExtension + compressExt
}

// ArtifactFilename builds the canonical artifact name for a target.
func ArtifactFilename(targetName string, ts time.Time, compressExt string) string {
	return fmt.Sprintf("%s-backup-%s%s", targetName, ts.Format(TimestampLayout), ArtifactSuffix(compressExt))
}

// Dumper runs the dump command inside the target container and streams
// its output through the compression filter into the backup directory.
type Dumper struct {
	runtime    domain.Runtime
	compressor domain.Compressor
	logger     Logger
	backupDir  string
	timeout    time.Duration
	now        func() time.Time
}

func NewDumper(
	runtime domain.Runtime,
	compressor domain.Compressor,
	logger Logger,
	backupDir string,
	timeout time.Duration,
	now func() time.Time,
) *Dumper {
	if now == nil {
		now = time.Now
	}
	return &Dumper{
		runtime:    runtime,
		compressor: compressor,
		logger:     logger,
		backupDir:  backupDir,
		timeout:    timeout,
		now:        now,
	}
}

// Dump produces exactly one artifact file on success and none on failure.
// Both pipeline stages are checked: the exec stage and the compressor
// flush, plus the final file close. Any failure removes the candidate.
func (d *Dumper) Dump(ctx context.Context, target domain.Target) (string, error) {
	filename := ArtifactFilename(target.Name, d.now(), d.compressor.Extension())
	path := filepath.Join(d.backupDir, filename)

	d.logger.Infof("[%s] Dumping to %s", target.Name, path)

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create artifact: %v", domain.ErrDumpFailed, err)
	}

	zw, err := d.compressor.NewWriter(file)
	if err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: %v", domain.ErrDumpFailed, err)
	}

	execErr := d.runtime.Exec(ctx, target.Name, zw, "pg_dumpall", "--username", target.User)
	flushErr := zw.Close()
	closeErr := file.Close()

	if execErr != nil || flushErr != nil || closeErr != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			d.logger.Warnf("[%s] Failed to remove partial artifact %s: %v", target.Name, path, removeErr)
		}

		cause := execErr
		if cause == nil {
			cause = flushErr
		}
		if cause == nil {
			cause = closeErr
		}
		return "", fmt.Errorf("%w: %v", domain.ErrDumpFailed, cause)
	}

	return path, nil
}
