package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "flux-ci/pkg/errors"
)

// processCreateReq binds the create repository request body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "gitrepo.http.processCreateReq: %v", err)
		return req, pkgErrors.ErrBadRequest
	}
	return req, nil
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "gitrepo.http.processListReq: %v", err)
		return req, pkgErrors.ErrBadRequest
	}
	return req, nil
}

// processUpdateReq binds the update request body and the URI id.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "gitrepo.http.processUpdateReq: %v", err)
		return req, pkgErrors.ErrBadRequest
	}
	req.ID = c.Param("id")
	return req, nil
}

// processPingReq binds the ping request body.
func (h *handler) processPingReq(c *gin.Context) (pingReq, error) {
	var req pingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "gitrepo.http.processPingReq: %v", err)
		return req, pkgErrors.ErrBadRequest
	}
	return req, nil
}
