package http

import (
	"github.com/gin-gonic/gin"

	"flux-ci/pkg/response"
)

// List godoc
// @Summary     List builds of a repository
// @Description Returns builds newest first.
// @Tags        Builds
// @Produce     json
// @Security    ApiToken
// @Param       id     path  string true  "Repository ID"
// @Param       limit  query int    false "Page size (default: 20)"
// @Param       offset query int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/repos/{id}/builds [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(out))
}

// Trigger godoc
// @Summary     Trigger a build
// @Description Queues a build for a ref without a webhook. An omitted commit is recorded as 40 zeros.
// @Tags        Builds
// @Accept      json
// @Produce     json
// @Security    ApiToken
// @Param       id   path string     true "Repository ID"
// @Param       body body triggerReq true "Ref and optional commit"
// @Success     202 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Repository not found"
// @Router      /api/v1/repos/{id}/builds [POST]
func (h *handler) Trigger(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTriggerReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Trigger(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Trigger: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Accepted(c, h.newDetailResp(out.Build))
}

// Detail godoc
// @Summary     Get a build
// @Tags        Builds
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Build ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/builds/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	b, err := h.uc.Detail(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(b))
}

// Restart godoc
// @Summary     Restart a build
// @Description Replaces a build that is not running with a new queued build of the same ref and commit.
// @Tags        Builds
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Build ID"
// @Success     202 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - build in progress"
// @Router      /api/v1/builds/{id}/restart [POST]
func (h *handler) Restart(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Restart(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Restart: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Accepted(c, h.newDetailResp(out.Build))
}

// Stop godoc
// @Summary     Stop a build
// @Description A queued build becomes stopped; a running build is asked to terminate.
// @Tags        Builds
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Build ID"
// @Success     200 {object} stopResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/builds/{id}/stop [POST]
func (h *handler) Stop(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Stop(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Stop: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newStopResp(out))
}

// Delete godoc
// @Summary     Delete a build
// @Tags        Builds
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Build ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - build in progress"
// @Router      /api/v1/builds/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Delete(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
