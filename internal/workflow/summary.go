package workflow

import (
	"time"

	"filerename/internal/census"
	"filerename/internal/renamer"
)

// Summary describes one run.
type Summary struct {
	RunID       string
	DryRun      bool
	Target      string
	IsDir       bool
	InitialRoot string
	FinalRoot   string
	Changes     []renamer.Change
	// Before and After are only populated for directory targets.
	Before    census.Census
	After     census.Census
	Generated int
	Retagged  int
	Started   time.Time
	Duration  time.Duration
}

// Mode returns "dry-run" or "apply".
func (s Summary) Mode() string {
	if s.DryRun {
		return "dry-run"
	}
	return "apply"
}

// CountByKind tallies the recorded changes per kind.
func (s Summary) CountByKind() map[renamer.ChangeKind]int {
	counts := make(map[renamer.ChangeKind]int)
	for _, change := range s.Changes {
		counts[change.Kind]++
	}
	return counts
}
