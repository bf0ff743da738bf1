package http

import (
	"flux-ci/internal/build"
	"flux-ci/pkg/log"
)

type handler struct {
	l  log.Logger
	uc build.UseCase
}

// New creates a new HTTP handler for the build lifecycle API.
func New(l log.Logger, uc build.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
