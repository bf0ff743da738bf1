package usecase

import (
	"context"
	"errors"
	"strings"

	"flux-ci/internal/build"
	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

// Dispatch persists a numbered queued build and submits it. A failed
// submission leaves the build queued; it is retried on the next executor start
// or by a restart.
func (uc *implUseCase) Dispatch(ctx context.Context, input build.DispatchInput) (build.DispatchOutput, error) {
	b, err := uc.repo.CreateBuild(ctx, repo.CreateBuildOptions{
		RepoID:    input.RepoID,
		Ref:       input.Ref,
		CommitSHA: input.CommitSHA,
	})
	if err != nil {
		if errors.Is(err, repo.ErrRecordNotFound) {
			return build.DispatchOutput{}, build.ErrRepoNotFound
		}
		uc.l.Errorf(ctx, "uc.Dispatch CreateBuild: %v", err)
		return build.DispatchOutput{}, err
	}

	uc.submit(ctx, b)
	return build.DispatchOutput{Build: b}, nil
}

// Trigger dispatches a build for a ref without a webhook delivery.
func (uc *implUseCase) Trigger(ctx context.Context, input build.TriggerInput) (build.DispatchOutput, error) {
	ref := strings.TrimSpace(input.Ref)
	if ref == "" {
		return build.DispatchOutput{}, build.ErrRefRequired
	}
	sha := strings.TrimSpace(input.CommitSHA)
	if sha == "" {
		sha = model.ZeroCommitSHA
	}
	if len(sha) != len(model.ZeroCommitSHA) {
		return build.DispatchOutput{}, build.ErrInvalidCommitSHA
	}

	return uc.Dispatch(ctx, build.DispatchInput{RepoID: input.RepoID, Ref: ref, CommitSHA: sha})
}

func (uc *implUseCase) submit(ctx context.Context, b model.Build) {
	if err := uc.executor.Enqueue(ctx, b); err != nil {
		uc.l.Warnf(ctx, "uc.submit: build %s #%d stays queued: %v", b.ID, b.Num, err)
		return
	}
	uc.l.Infof(ctx, "Build #%d for repository %s queued: %s", b.Num, b.RepoID, uc.buildURL(b))
}

func (uc *implUseCase) buildURL(b model.Build) string {
	return uc.appURL + "/api/v1/builds/" + b.ID
}
