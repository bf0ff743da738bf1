package model

import "time"

// BuildStatus is the lifecycle state of a Build.
type BuildStatus string

const (
	BuildStatusQueued   BuildStatus = "queued"
	BuildStatusBuilding BuildStatus = "building"
	BuildStatusFinished BuildStatus = "finished"
	BuildStatusStopped  BuildStatus = "stopped"
	BuildStatusError    BuildStatus = "error"
)

// IsTerminal reports whether no worker will touch a build in this state again.
func (s BuildStatus) IsTerminal() bool {
	switch s {
	case BuildStatusFinished, BuildStatusStopped, BuildStatusError:
		return true
	}
	return false
}

// Build is one numbered execution of a repository at a commit.
type Build struct {
	ID           string
	RepoID       string
	Num          int
	Ref          string
	CommitSHA    string
	Status       BuildStatus
	DateQueued   time.Time
	DateStarted  *time.Time
	DateFinished *time.Time
}

// ZeroCommitSHA stands in for an unknown commit on manual triggers.
const ZeroCommitSHA = "0000000000000000000000000000000000000000"
