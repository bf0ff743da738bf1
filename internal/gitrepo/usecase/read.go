package usecase

import (
	"context"

	"flux-ci/internal/gitrepo"
	repo "flux-ci/internal/gitrepo/repository"
	"flux-ci/internal/model"
)

// Detail returns a repository by id.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Repository, error) {
	return uc.getOne(ctx, repo.GetOneRepositoryOptions{ID: id})
}

// FindByName returns a repository by its "owner/repo" name.
func (uc *implUseCase) FindByName(ctx context.Context, name string) (model.Repository, error) {
	return uc.getOne(ctx, repo.GetOneRepositoryOptions{Name: name})
}

// List returns repositories ordered by name.
func (uc *implUseCase) List(ctx context.Context, input gitrepo.ListInput) (gitrepo.ListOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := max(input.Offset, 0)

	repos, total, err := uc.repo.ListRepositories(ctx, repo.ListRepositoriesOptions{Limit: limit, Offset: offset})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListRepositories: %v", err)
		return gitrepo.ListOutput{}, err
	}
	return gitrepo.ListOutput{Repositories: repos, Total: total, Limit: limit, Offset: offset}, nil
}

func (uc *implUseCase) getOne(ctx context.Context, opt repo.GetOneRepositoryOptions) (model.Repository, error) {
	if opt.ID == "" && opt.Name == "" {
		return model.Repository{}, gitrepo.ErrRepoNotFound
	}
	rp, err := uc.repo.GetOneRepository(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.getOne GetOneRepository: %v", err)
		return model.Repository{}, err
	}
	if rp.ID == "" {
		return model.Repository{}, gitrepo.ErrRepoNotFound
	}
	return rp, nil
}
