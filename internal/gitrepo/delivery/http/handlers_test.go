package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"flux-ci/internal/gitrepo"
	"flux-ci/internal/middleware"
	"flux-ci/internal/model"
	"flux-ci/pkg/log"
)

type mockUseCase struct {
	repo      model.Repository
	err       error
	gotCreate gitrepo.CreateInput
	gotUpdate gitrepo.UpdateInput
	gotPing   gitrepo.PingInput
}

func (m *mockUseCase) Create(ctx context.Context, in gitrepo.CreateInput) (model.Repository, error) {
	m.gotCreate = in
	return m.repo, m.err
}

func (m *mockUseCase) Update(ctx context.Context, in gitrepo.UpdateInput) (model.Repository, error) {
	m.gotUpdate = in
	return m.repo, m.err
}

func (m *mockUseCase) Detail(ctx context.Context, id string) (model.Repository, error) {
	return m.repo, m.err
}

func (m *mockUseCase) FindByName(ctx context.Context, name string) (model.Repository, error) {
	return m.repo, m.err
}

func (m *mockUseCase) List(ctx context.Context, in gitrepo.ListInput) (gitrepo.ListOutput, error) {
	return gitrepo.ListOutput{Repositories: []model.Repository{m.repo}, Total: 1, Limit: 20}, m.err
}

func (m *mockUseCase) Delete(ctx context.Context, id string) error {
	return m.err
}

func (m *mockUseCase) Ping(ctx context.Context, in gitrepo.PingInput) error {
	m.gotPing = in
	return m.err
}

const token = "tok"

func setup(uc *mockUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), middleware.New(log.NewNop(), token))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateHandler(t *testing.T) {
	t.Run("Secret is not returned", func(t *testing.T) {
		uc := &mockUseCase{repo: model.Repository{ID: "1", Name: "acme/widgets", Secret: "hush"}}
		w := do(setup(uc), http.MethodPost, "/api/v1/repos", `{"name":"acme/widgets","clone_url":"u","secret":"hush"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "hush") {
			t.Errorf("response leaks the secret: %s", w.Body.String())
		}
		var resp struct {
			Data detailResp `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Data.Repository.HasSecret {
			t.Error("has_secret = false, want true")
		}
		if uc.gotCreate.Secret != "hush" {
			t.Errorf("use case got secret %q", uc.gotCreate.Secret)
		}
	})

	t.Run("Missing clone url", func(t *testing.T) {
		w := do(setup(&mockUseCase{}), http.MethodPost, "/api/v1/repos", `{"name":"acme/widgets"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Duplicate name", func(t *testing.T) {
		w := do(setup(&mockUseCase{err: gitrepo.ErrDuplicateName}), http.MethodPost, "/api/v1/repos", `{"name":"acme/widgets","clone_url":"u"}`)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/repos", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		setup(&mockUseCase{}).ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestUpdateHandlerSecret(t *testing.T) {
	uc := &mockUseCase{repo: model.Repository{ID: "1"}}
	r := setup(uc)

	do(r, http.MethodPut, "/api/v1/repos/1", `{"name":"acme/w","clone_url":"u"}`)
	if uc.gotUpdate.Secret != nil {
		t.Errorf("omitted secret should be nil, got %q", *uc.gotUpdate.Secret)
	}
	if uc.gotUpdate.ID != "1" {
		t.Errorf("id = %q, want 1", uc.gotUpdate.ID)
	}

	do(r, http.MethodPut, "/api/v1/repos/1", `{"name":"acme/w","clone_url":"u","secret":""}`)
	if uc.gotUpdate.Secret == nil || *uc.gotUpdate.Secret != "" {
		t.Error("explicit empty secret should clear it")
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gitrepo.ErrRepoNotFound, http.StatusNotFound},
		{gitrepo.ErrCannotDelete, http.StatusConflict},
		{gitrepo.ErrInvalidName, http.StatusBadRequest},
		{fmt.Errorf("%w: refs/heads/[z-a]", gitrepo.ErrInvalidWhitelist), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := do(setup(&mockUseCase{err: tt.err}), http.MethodDelete, "/api/v1/repos/1", "")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPingHandler(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"reachable", `{"url":"https://example.com/acme/widgets.git"}`, nil, http.StatusOK},
		{"unreachable", `{"url":"https://example.com/nope.git"}`, gitrepo.ErrUnreachable, http.StatusNotFound},
		{"option url", `{"url":"--upload-pack=x"}`, gitrepo.ErrInvalidCloneURL, http.StatusBadRequest},
		{"missing url", `{}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{err: tt.err}
			w := do(setup(uc), http.MethodPost, "/api/v1/repos/ping", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d (%s), want %d", w.Code, w.Body.String(), tt.want)
			}
		})
	}

	t.Run("Passes the url", func(t *testing.T) {
		uc := &mockUseCase{}
		w := do(setup(uc), http.MethodPost, "/api/v1/repos/ping", `{"url":"git@example.com:acme/widgets.git"}`)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"reachable":true`) {
			t.Errorf("got %d %s", w.Code, w.Body.String())
		}
		if uc.gotPing.CloneURL != "git@example.com:acme/widgets.git" {
			t.Errorf("ping input = %+v", uc.gotPing)
		}
	})
}
