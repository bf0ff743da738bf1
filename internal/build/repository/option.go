package repository

import (
	"time"

	"flux-ci/internal/model"
)

// CreateBuildOptions holds parameters for inserting a new queued Build.
type CreateBuildOptions struct {
	RepoID    string
	Ref       string
	CommitSHA string
}

// GetOneBuildOptions holds filter parameters for fetching a single Build.
// All non-empty fields are applied as AND conditions.
type GetOneBuildOptions struct {
	ID     string
	RepoID string
	Num    *int
}

// ListBuildsOptions holds filter and pagination parameters for listing Builds.
// Limit <= 0 returns every match.
type ListBuildsOptions struct {
	RepoID   string
	Statuses []model.BuildStatus
	Limit    int
	Offset   int
}

// TransitionBuildOptions describes a conditional status change. Moving to
// building stamps date_started; moving to a terminal status stamps date_finished.
type TransitionBuildOptions struct {
	ID   string
	From []model.BuildStatus
	To   model.BuildStatus
	At   time.Time
}
