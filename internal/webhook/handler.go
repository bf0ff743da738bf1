package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"flux-ci/internal/build"
	"flux-ci/internal/gitrepo"
	"flux-ci/internal/model"
	pkgLog "flux-ci/pkg/log"
	"flux-ci/pkg/response"
)

const maxBodyBytes = 10 << 20

const (
	msgRejected       = "push event rejected"
	msgNotWhitelisted = "ref not whitelisted, no build dispatched"
	msgRateLimited    = "rate limit exceeded"
	msgForbidden      = "forbidden"
	msgInternal       = "internal error"
)

// RepoFinder resolves "owner/name" to a tracked repository.
type RepoFinder interface {
	FindByName(ctx context.Context, name string) (model.Repository, error)
}

// Dispatcher numbers, persists and enqueues a build.
type Dispatcher interface {
	Dispatch(ctx context.Context, input build.DispatchInput) (build.DispatchOutput, error)
}

// RefPolicy decides whether a ref may be built.
type RefPolicy interface {
	Accepts(whitelist []string, ref string) bool
}

// Handler serves the push webhook endpoint.
type Handler struct {
	l        pkgLog.Logger
	repos    RepoFinder
	builds   Dispatcher
	policy   RefPolicy
	security *SecurityValidator
}

func NewHandler(
	l pkgLog.Logger,
	repos RepoFinder,
	builds Dispatcher,
	policy RefPolicy,
	securityConfig SecurityConfig,
) *Handler {
	return &Handler{
		l:        l,
		repos:    repos,
		builds:   builds,
		policy:   policy,
		security: NewSecurityValidator(securityConfig),
	}
}

// RegisterRoutes mounts the push hook.
func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.POST("/hook/push", h.HandlePush)
}

// HandlePush godoc
// @Summary     Push webhook
// @Description Receives a push delivery from the provider named by `api` and dispatches a build.
// @Tags        Webhook
// @Accept      json
// @Produce     plain
// @Param       api query string true "gogs, github, gitea, gitbucket, bitbucket, bitbucket-cloud or gitlab"
// @Success     200 {string} string "build #<num> queued"
// @Failure     400 {string} string "validation failure or rejected push"
// @Failure     403 {string} string "forbidden"
// @Failure     429 {string} string "rate limit exceeded"
// @Failure     500 {string} string "internal error"
// @Router      /hook/push [POST]
func (h *Handler) HandlePush(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "webhook.HandlePush: %v", err)
		response.Text(c, http.StatusForbidden, msgForbidden)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandlePush: read body: %v", err)
		response.Text(c, http.StatusBadRequest, ErrMalformedPayload.Error())
		return
	}

	status, msg := h.process(ctx, c.Query("api"), c.Request.Header, body)
	response.Text(c, status, msg)
}

// process runs one delivery through normalization, verification, ref policy
// and dispatch, and returns the status and body to answer with.
func (h *Handler) process(ctx context.Context, provider string, header http.Header, body []byte) (int, string) {
	push, err := Normalize(provider, header, body)
	if err != nil {
		h.l.Errorf(ctx, "webhook.process: payload rejected (%s): %v", provider, err)
		return http.StatusBadRequest, err.Error()
	}

	ev := push.Event
	name := ev.RepoName()
	h.l.Infof(ctx, "webhook.process: %s push for %s %s@%s", provider, name, ev.Ref, ev.CommitSHA)

	if err := h.security.CheckFallback(push); err != nil {
		h.l.Errorf(ctx, "webhook.process: push event rejected (%v) for %s", err, name)
		return http.StatusBadRequest, msgRejected
	}

	repo, err := h.repos.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gitrepo.ErrRepoNotFound) {
			h.l.Errorf(ctx, "webhook.process: push event rejected (%v) for %s", ErrUnknownRepository, name)
			return http.StatusBadRequest, msgRejected
		}
		h.l.Errorf(ctx, "webhook.process: repos.FindByName: %v", err)
		return http.StatusInternalServerError, msgInternal
	}

	if !Verify(push.Scheme, repo.Secret, body, ev.PresentedSecret) {
		h.l.Errorf(ctx, "webhook.process: push event rejected (%v, scheme %s) for %s", ErrSignatureMismatch, push.Scheme, name)
		return http.StatusBadRequest, msgRejected
	}

	if err := h.security.CheckRateLimit(name); err != nil {
		h.l.Warnf(ctx, "webhook.process: %v", err)
		return http.StatusTooManyRequests, msgRateLimited
	}

	if !h.policy.Accepts(repo.RefWhitelist, ev.Ref) {
		h.l.Infof(ctx, "webhook.process: ref %q not whitelisted for %s, no build dispatched", ev.Ref, name)
		return http.StatusOK, msgNotWhitelisted
	}

	out, err := h.builds.Dispatch(ctx, build.DispatchInput{
		RepoID:    repo.ID,
		Ref:       ev.Ref,
		CommitSHA: ev.CommitSHA,
	})
	if err != nil {
		h.l.Errorf(ctx, "webhook.process: builds.Dispatch: %v", err)
		return http.StatusInternalServerError, msgInternal
	}

	return http.StatusOK, fmt.Sprintf("build #%d queued", out.Build.Num)
}
