package http

import (
	"errors"
	"net/http"

	"flux-ci/internal/gitrepo"
	pkgErrors "flux-ci/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, gitrepo.ErrRepoNotFound),
		errors.Is(err, gitrepo.ErrUnreachable):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, gitrepo.ErrDuplicateName),
		errors.Is(err, gitrepo.ErrCannotDelete):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, gitrepo.ErrInvalidName),
		errors.Is(err, gitrepo.ErrCloneURLRequired),
		errors.Is(err, gitrepo.ErrInvalidCloneURL),
		errors.Is(err, gitrepo.ErrInvalidWhitelist):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
