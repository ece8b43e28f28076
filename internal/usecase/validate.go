package usecase

import (
	"fmt"
	"os"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

// Validator rejects empty or missing artifacts. A rejected artifact is
// deleted so nothing partially written survives a run.
type Validator struct {
	logger Logger
}

func NewValidator(logger Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate returns the artifact's byte size. Zero-length and missing
// files fail with ErrEmptyArtifact and are removed; removing an
// already-absent file is not an error.
func (v *Validator) Validate(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			v.logger.Warnf("Failed to remove invalid artifact %s: %v", path, removeErr)
		}
		v.logger.Errorf("Artifact %s is empty or missing, deleted", path)
		return 0, fmt.Errorf("%w: %s", domain.ErrEmptyArtifact, path)
	}

	v.logger.Infof("Artifact %s validated, size: %s", path, humanSize(info.Size()))
	return info.Size(), nil
}
