package usecase

import (
	"flux-ci/internal/gitrepo"
	"flux-ci/internal/gitrepo/repository"
	"flux-ci/pkg/log"
)

// implUseCase is the private implementation of gitrepo.UseCase.
type implUseCase struct {
	repo   repository.Repository
	purger gitrepo.Purger
	pinger gitrepo.Pinger
	l      log.Logger
}

// New creates a new gitrepo UseCase implementation. purger may be nil; with a
// nil pinger every Ping fails with ErrUnreachable.
func New(repo repository.Repository, purger gitrepo.Purger, pinger gitrepo.Pinger, l log.Logger) gitrepo.UseCase {
	return &implUseCase{
		repo:   repo,
		purger: purger,
		pinger: pinger,
		l:      l,
	}
}
