package usecase

import (
	"context"
	"errors"

	"flux-ci/internal/build"
	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

// Restart replaces a build that is not running with a fresh queued build of
// the same ref and commit, then discards the old build's workspace and log.
func (uc *implUseCase) Restart(ctx context.Context, id string) (build.DispatchOutput, error) {
	old, err := uc.get(ctx, id)
	if err != nil {
		return build.DispatchOutput{}, err
	}
	if old.Status == model.BuildStatusBuilding {
		return build.DispatchOutput{}, build.ErrRestartWhileBuilding
	}

	b, err := uc.repo.RestartBuild(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrBuildInFlight):
			return build.DispatchOutput{}, build.ErrRestartWhileBuilding
		case errors.Is(err, repo.ErrRecordNotFound):
			return build.DispatchOutput{}, build.ErrBuildNotFound
		}
		uc.l.Errorf(ctx, "uc.Restart RestartBuild: %v", err)
		return build.DispatchOutput{}, err
	}

	uc.purge(ctx, old)
	uc.submit(ctx, b)
	return build.DispatchOutput{Build: b}, nil
}

// Stop flips a queued build to stopped. A building build is asked to
// terminate; the executor records the final status.
func (uc *implUseCase) Stop(ctx context.Context, id string) (build.StopOutput, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return build.StopOutput{}, err
	}

	if b.Status == model.BuildStatusQueued {
		ok, err := uc.repo.TransitionBuild(ctx, repo.TransitionBuildOptions{
			ID:   b.ID,
			From: []model.BuildStatus{model.BuildStatusQueued},
			To:   model.BuildStatusStopped,
		})
		if err != nil {
			uc.l.Errorf(ctx, "uc.Stop TransitionBuild: %v", err)
			return build.StopOutput{}, err
		}
		if ok {
			return build.StopOutput{Build: uc.reload(ctx, b)}, nil
		}
		// A worker picked it up in the meantime.
		if b, err = uc.get(ctx, id); err != nil {
			return build.StopOutput{}, err
		}
	}

	if b.Status == model.BuildStatusBuilding {
		if err := uc.executor.Terminate(ctx, b); err != nil {
			uc.l.Errorf(ctx, "uc.Stop Terminate: %v", err)
			return build.StopOutput{}, err
		}
		return build.StopOutput{Build: b, Terminated: true}, nil
	}

	return build.StopOutput{Build: b}, nil
}

// Delete removes a build that is not running, with its workspace and log.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	b, err := uc.get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteBuild(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrBuildInFlight):
			return build.ErrCannotDelete
		case errors.Is(err, repo.ErrRecordNotFound):
			return build.ErrBuildNotFound
		}
		uc.l.Errorf(ctx, "uc.Delete DeleteBuild: %v", err)
		return err
	}

	uc.purge(ctx, b)
	return nil
}

func (uc *implUseCase) purge(ctx context.Context, b model.Build) {
	if err := uc.executor.Purge(ctx, b); err != nil {
		uc.l.Warnf(ctx, "uc.purge: build %s: %v", b.ID, err)
	}
}

// reload re-reads b, returning b unchanged if the read fails.
func (uc *implUseCase) reload(ctx context.Context, b model.Build) model.Build {
	fresh, err := uc.repo.GetOneBuild(ctx, repo.GetOneBuildOptions{ID: b.ID})
	if err != nil || fresh.ID == "" {
		return b
	}
	return fresh
}
