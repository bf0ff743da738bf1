package usecase

import (
	"context"

	"flux-ci/internal/build"
	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Detail returns a single build.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Build, error) {
	return uc.get(ctx, id)
}

// List returns a repository's builds, newest first.
func (uc *implUseCase) List(ctx context.Context, input build.ListInput) (build.ListOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := max(input.Offset, 0)

	builds, total, err := uc.repo.ListBuilds(ctx, repo.ListBuildsOptions{
		RepoID: input.RepoID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListBuilds: %v", err)
		return build.ListOutput{}, err
	}

	return build.ListOutput{Builds: builds, Total: total, Limit: limit, Offset: offset}, nil
}

func (uc *implUseCase) get(ctx context.Context, id string) (model.Build, error) {
	b, err := uc.repo.GetOneBuild(ctx, repo.GetOneBuildOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.get GetOneBuild: %v", err)
		return model.Build{}, err
	}
	if b.ID == "" {
		return model.Build{}, build.ErrBuildNotFound
	}
	return b, nil
}
