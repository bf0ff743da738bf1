package http

import (
	"flux-ci/internal/gitrepo"
	"flux-ci/pkg/log"
)

type handler struct {
	l  log.Logger
	uc gitrepo.UseCase
}

// New creates a new HTTP handler for the repository domain.
func New(l log.Logger, uc gitrepo.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
