package repository

import (
	"context"

	"flux-ci/internal/model"
)

// Repository is the composed interface for the build data store.
type Repository interface {
	BuildRepository
}

// BuildRepository defines all data access methods for the Build entity.
type BuildRepository interface {
	// CreateBuild assigns num from the repository's build count and increments
	// the count in the same transaction.
	CreateBuild(ctx context.Context, opt CreateBuildOptions) (model.Build, error)
	// GetOneBuild returns a zero Build (ID == "") when nothing matches.
	GetOneBuild(ctx context.Context, opt GetOneBuildOptions) (model.Build, error)
	ListBuilds(ctx context.Context, opt ListBuildsOptions) ([]model.Build, int, error)
	// TransitionBuild moves a build to opt.To only if its status is one of
	// opt.From, and reports whether it did.
	TransitionBuild(ctx context.Context, opt TransitionBuildOptions) (bool, error)
	// DeleteBuild fails with ErrBuildInFlight while the build is building.
	DeleteBuild(ctx context.Context, id string) error
	// RestartBuild replaces a build that is not building with a fresh queued
	// build of the same ref and commit under a new num.
	RestartBuild(ctx context.Context, id string) (model.Build, error)
}
