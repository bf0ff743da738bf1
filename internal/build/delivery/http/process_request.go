package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flux-ci/internal/build"
	pkgErrors "flux-ci/pkg/errors"
)

// processTriggerReq binds the manual trigger body and the repository id.
func (h *handler) processTriggerReq(c *gin.Context) (triggerReq, error) {
	var req triggerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "build.http.processTriggerReq: %v", err)
		return req, pkgErrors.NewHTTPError(http.StatusBadRequest, build.ErrRefRequired.Error())
	}
	req.RepoID = c.Param("id")
	return req, nil
}

// processListReq binds the list query parameters and the repository id.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "build.http.processListReq: %v", err)
		return req, pkgErrors.ErrBadRequest
	}
	req.RepoID = c.Param("id")
	return req, nil
}
