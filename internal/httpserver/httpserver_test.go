package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"flux-ci/config"
	fluxdb "flux-ci/config/sqlite"
	"flux-ci/internal/model"
	"flux-ci/internal/webhook"
	"flux-ci/pkg/log"
)

type fakeExecutor struct {
	mu       sync.Mutex
	enqueued []model.Build
}

func (f *fakeExecutor) Enqueue(ctx context.Context, b model.Build) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, b)
	return nil
}

func (f *fakeExecutor) Terminate(ctx context.Context, b model.Build) error { return nil }

func (f *fakeExecutor) Purge(ctx context.Context, b model.Build) error { return nil }

func (f *fakeExecutor) PurgeRepository(ctx context.Context, r model.Repository) error { return nil }

const apiToken = "tok"

func newServer(t *testing.T) (*HTTPServer, *fakeExecutor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := fluxdb.Connect(context.Background(), config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "flux.db")})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	exec := &fakeExecutor{}
	srv, err := New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		DB:          db,
		Executor:    exec,
		Webhook:     webhook.SecurityConfig{RateLimitPerMin: 600},
		AppURL:      "http://flux.test",
		APIToken:    apiToken,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, exec
}

func serve(srv *HTTPServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewValidation(t *testing.T) {
	if _, err := New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8080}); err == nil {
		t.Error("expected an error without a database")
	}
}

func TestNewRejectsInvalidTrustedProxy(t *testing.T) {
	db, err := fluxdb.Connect(context.Background(), config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "flux.db")})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	_, err = New(log.NewNop(), Config{
		Logger:         log.NewNop(),
		Port:           8080,
		Mode:           gin.TestMode,
		DB:             db,
		Executor:       &fakeExecutor{},
		TrustedProxies: []string{"not-a-proxy"},
	})
	if err == nil {
		t.Error("expected an error for an invalid trusted proxy")
	}
}

func TestSystemRoutes(t *testing.T) {
	srv, _ := newServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
		})
	}
}

func TestPushToBuild(t *testing.T) {
	srv, exec := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/repos",
		strings.NewReader(`{"name":"acme/widgets","clone_url":"https://example.com/acme/widgets.git","secret":"hush","ref_whitelist":["refs/heads/*"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiToken)
	if w := serve(srv, req); w.Code != http.StatusOK {
		t.Fatalf("create repository: %d %s", w.Code, w.Body.String())
	}

	push := func(ref, signature string) *httptest.ResponseRecorder {
		body := `{"ref":"` + ref + `","after":"0123456789abcdef0123456789abcdef01234567",` +
			`"repository":{"name":"widgets","owner":{"name":"acme"}}}`
		if signature == "" {
			signature = webhook.Signature(sha1.New, "hush", []byte(body))
		}
		req := httptest.NewRequest(http.MethodPost, "/hook/push?api=github", strings.NewReader(body))
		req.Header.Set("X-Github-Event", "push")
		req.Header.Set("X-Hub-Signature", "sha1="+signature)
		return serve(srv, req)
	}

	t.Run("Build dispatched", func(t *testing.T) {
		w := push("refs/heads/main", "")
		if w.Code != http.StatusOK || w.Body.String() != "build #0 queued" {
			t.Fatalf("got %d %q", w.Code, w.Body.String())
		}
		w = push("refs/heads/dev", "")
		if w.Body.String() != "build #1 queued" {
			t.Fatalf("second push got %q", w.Body.String())
		}
	})

	t.Run("Ref not whitelisted", func(t *testing.T) {
		w := push("refs/tags/v1", "")
		if w.Code != http.StatusOK || w.Body.String() != "ref not whitelisted, no build dispatched" {
			t.Errorf("got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("Bad signature", func(t *testing.T) {
		w := push("refs/heads/main", strings.Repeat("0", 40))
		if w.Code != http.StatusBadRequest || w.Body.String() != "push event rejected" {
			t.Errorf("got %d %q", w.Code, w.Body.String())
		}
	})

	if len(exec.enqueued) != 2 {
		t.Fatalf("enqueued %d builds, want 2", len(exec.enqueued))
	}

	t.Run("Builds listed newest first", func(t *testing.T) {
		repoID := exec.enqueued[0].RepoID
		req := httptest.NewRequest(http.MethodGet, "/api/v1/repos/"+repoID+"/builds", nil)
		req.Header.Set("Authorization", "Bearer "+apiToken)
		w := serve(srv, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}

		var resp struct {
			Data struct {
				Builds []struct {
					Num    int    `json:"num"`
					Status string `json:"status"`
				} `json:"builds"`
				Total int `json:"total"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Data.Total != 2 || resp.Data.Builds[0].Num != 1 || resp.Data.Builds[0].Status != "queued" {
			t.Errorf("builds = %+v", resp.Data)
		}
	})
}
