package usecase

import (
	"flux-ci/internal/build"
	"flux-ci/internal/build/repository"
	"flux-ci/pkg/log"
)

// implUseCase is the private implementation of build.UseCase.
type implUseCase struct {
	repo     repository.Repository
	executor build.Executor
	l        log.Logger
	appURL   string
}

// New creates a new build UseCase implementation. appURL prefixes the build
// links written to the log.
func New(repo repository.Repository, executor build.Executor, l log.Logger, appURL string) build.UseCase {
	return &implUseCase{
		repo:     repo,
		executor: executor,
		l:        l,
		appURL:   appURL,
	}
}
