package usecase

import (
	"context"
	"errors"
	"strings"

	"flux-ci/internal/gitrepo"
	repo "flux-ci/internal/gitrepo/repository"
	"flux-ci/internal/model"
)

// Create registers a repository after validating its name and clone url.
func (uc *implUseCase) Create(ctx context.Context, input gitrepo.CreateInput) (model.Repository, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return model.Repository{}, err
	}
	if err := validateCloneURL(input.CloneURL); err != nil {
		return model.Repository{}, err
	}
	if err := validateWhitelist(input.RefWhitelist); err != nil {
		return model.Repository{}, err
	}

	existing, err := uc.repo.GetOneRepository(ctx, repo.GetOneRepositoryOptions{Name: name})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create GetOneRepository: %v", err)
		return model.Repository{}, err
	}
	if existing.ID != "" {
		return model.Repository{}, gitrepo.ErrDuplicateName
	}

	created, err := uc.repo.CreateRepository(ctx, repo.CreateRepositoryOptions{
		Name:         name,
		CloneURL:     strings.TrimSpace(input.CloneURL),
		Secret:       input.Secret,
		RefWhitelist: cleanWhitelist(input.RefWhitelist),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			return model.Repository{}, gitrepo.ErrDuplicateName
		}
		uc.l.Errorf(ctx, "uc.Create CreateRepository: %v", err)
		return model.Repository{}, err
	}
	return created, nil
}

// Update changes a repository's settings. The build count is preserved.
func (uc *implUseCase) Update(ctx context.Context, input gitrepo.UpdateInput) (model.Repository, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return model.Repository{}, err
	}
	if err := validateCloneURL(input.CloneURL); err != nil {
		return model.Repository{}, err
	}
	if err := validateWhitelist(input.RefWhitelist); err != nil {
		return model.Repository{}, err
	}

	other, err := uc.repo.GetOneRepository(ctx, repo.GetOneRepositoryOptions{Name: name})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update GetOneRepository: %v", err)
		return model.Repository{}, err
	}
	if other.ID != "" && other.ID != input.ID {
		return model.Repository{}, gitrepo.ErrDuplicateName
	}

	updated, err := uc.repo.UpdateRepository(ctx, repo.UpdateRepositoryOptions{
		ID:           input.ID,
		Name:         name,
		CloneURL:     strings.TrimSpace(input.CloneURL),
		Secret:       input.Secret,
		RefWhitelist: cleanWhitelist(input.RefWhitelist),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			return model.Repository{}, gitrepo.ErrDuplicateName
		}
		uc.l.Errorf(ctx, "uc.Update UpdateRepository: %v", err)
		return model.Repository{}, err
	}
	if updated.ID == "" {
		return model.Repository{}, gitrepo.ErrRepoNotFound
	}
	return updated, nil
}

// Delete removes a repository with all of its builds. It fails while a build
// of the repository is running.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	rp, err := uc.Detail(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteRepository(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrBuildInFlight):
			return gitrepo.ErrCannotDelete
		case errors.Is(err, repo.ErrRecordNotFound):
			return gitrepo.ErrRepoNotFound
		}
		uc.l.Errorf(ctx, "uc.Delete DeleteRepository: %v", err)
		return err
	}

	if uc.purger != nil {
		if err := uc.purger.PurgeRepository(ctx, rp); err != nil {
			uc.l.Warnf(ctx, "uc.Delete PurgeRepository %s: %v", rp.Name, err)
		}
	}
	return nil
}
