package http

import (
	"errors"
	"net/http"

	"flux-ci/internal/build"
	pkgErrors "flux-ci/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, build.ErrBuildNotFound),
		errors.Is(err, build.ErrRepoNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, build.ErrRestartWhileBuilding),
		errors.Is(err, build.ErrCannotDelete):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, build.ErrRefRequired),
		errors.Is(err, build.ErrInvalidCommitSHA):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
