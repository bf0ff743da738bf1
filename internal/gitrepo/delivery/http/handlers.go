package http

import (
	"github.com/gin-gonic/gin"

	"flux-ci/pkg/response"
)

// Create godoc
// @Summary     Register a repository
// @Description Registers a repository by its "owner/repo" name. The secret is never returned.
// @Tags        Repositories
// @Accept      json
// @Produce     json
// @Security    ApiToken
// @Param       body body createReq true "Repository"
// @Success     200  {object} detailResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     409  {object} response.Resp "Conflict - name already exists"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/repos [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	repo, err := h.uc.Create(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(repo))
}

// List godoc
// @Summary     List repositories
// @Description Returns registered repositories ordered by name.
// @Tags        Repositories
// @Produce     json
// @Security    ApiToken
// @Param       limit  query int false "Page size (default: 20)"
// @Param       offset query int false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/repos [GET]
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

// Detail godoc
// @Summary     Get a repository
// @Tags        Repositories
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Repository ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/repos/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	repo, err := h.uc.Detail(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(repo))
}

// Update godoc
// @Summary     Update a repository
// @Description Replaces name, clone url and ref whitelist. An omitted secret keeps the stored one.
// @Tags        Repositories
// @Accept      json
// @Produce     json
// @Security    ApiToken
// @Param       id   path string    true "Repository ID"
// @Param       body body updateReq true "Repository"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Router      /api/v1/repos/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	repo, err := h.uc.Update(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(repo))
}

// Delete godoc
// @Summary     Delete a repository
// @Description Removes a repository and all of its builds. Refused while one of its builds is running.
// @Tags        Repositories
// @Produce     json
// @Security    ApiToken
// @Param       id path string true "Repository ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - build in progress"
// @Router      /api/v1/repos/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Delete(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// Ping godoc
// @Summary     Check a clone url
// @Description Lists the remote with git to check it is reachable with the server's credentials.
// @Tags        Repositories
// @Accept      json
// @Produce     json
// @Security    ApiToken
// @Param       body body pingReq true "Clone url"
// @Success     200 {object} pingResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not reachable"
// @Router      /api/v1/repos/ping [POST]
func (h *handler) Ping(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPingReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.Ping(ctx, req.toInput()); err != nil {
		h.l.Warnf(ctx, "uc.Ping: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, pingResp{Reachable: true})
}
