package domain

import (
	"time"
)

// Target is a database instance running inside a named container.
type Target struct {
	Name string
	User string
}

// Artifact is one compressed dump of one target at one point in time.
type Artifact struct {
	TargetName string
	FilePath   string
	SizeBytes  int64
	CreatedAt  time.Time
}

// RunStatistics accumulates the outcome of a single orchestration run.
type RunStatistics struct {
	Total   int
	Success int
	Failure int
}

// RunReport is the summary handed to notifiers after a run.
type RunReport struct {
	Stats     RunStatistics
	Artifacts []Artifact
	Duration  time.Duration
}

// RetentionPolicy is the age threshold beyond which artifacts are deleted.
type RetentionPolicy struct {
	MaxAgeDays int
}

// Cutoff returns the modification-time threshold relative to now.
// Files strictly older than the cutoff are eligible for deletion.
func (p RetentionPolicy) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.MaxAgeDays)
}
