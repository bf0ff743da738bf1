package repository

import (
	"context"

	"flux-ci/internal/model"
)

// Repository is the composed interface for the tracked-repository data store.
type Repository interface {
	GitRepository
}

// GitRepository defines all data access methods for the Repository entity.
type GitRepository interface {
	CreateRepository(ctx context.Context, opt CreateRepositoryOptions) (model.Repository, error)
	// GetOneRepository returns a zero Repository (ID == "") when nothing matches.
	GetOneRepository(ctx context.Context, opt GetOneRepositoryOptions) (model.Repository, error)
	ListRepositories(ctx context.Context, opt ListRepositoriesOptions) ([]model.Repository, int, error)
	// UpdateRepository returns a zero Repository when the id does not exist.
	UpdateRepository(ctx context.Context, opt UpdateRepositoryOptions) (model.Repository, error)
	// DeleteRepository removes the repository and its builds, refusing with
	// ErrBuildInFlight while any of them is building.
	DeleteRepository(ctx context.Context, id string) error
}
