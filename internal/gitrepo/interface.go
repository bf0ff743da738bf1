package gitrepo

import (
	"context"

	"flux-ci/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, input CreateInput) (model.Repository, error)
	Update(ctx context.Context, input UpdateInput) (model.Repository, error)
	Detail(ctx context.Context, id string) (model.Repository, error)
	// FindByName looks a repository up by its "owner/repo" name.
	FindByName(ctx context.Context, name string) (model.Repository, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Delete(ctx context.Context, id string) error
	// Ping checks that a clone url answers before it is registered.
	Ping(ctx context.Context, input PingInput) error
}

// Purger removes what the executor keeps on disk for a repository.
type Purger interface {
	PurgeRepository(ctx context.Context, repo model.Repository) error
}

// Pinger reaches a remote without cloning it.
type Pinger interface {
	PingCloneURL(ctx context.Context, url string) error
}
