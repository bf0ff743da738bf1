package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"flux-ci/config"
	fluxdb "flux-ci/config/sqlite"
	"flux-ci/internal/gitrepo/repository"
	"flux-ci/internal/gitrepo/repository/sqlite"
	"flux-ci/pkg/log"
)

func setup(t *testing.T) (*sql.DB, repository.Repository) {
	t.Helper()
	db, err := fluxdb.Connect(context.Background(), config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "flux.db")})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, sqlite.New(db, log.NewNop())
}

func TestCreateAndGet(t *testing.T) {
	_, r := setup(t)
	ctx := context.Background()

	created, err := r.CreateRepository(ctx, repository.CreateRepositoryOptions{
		Name:         "acme/widgets",
		CloneURL:     "https://example.com/acme/widgets.git",
		Secret:       "s3cr3t",
		RefWhitelist: []string{"refs/heads/main", "refs/tags/*"},
	})
	if err != nil {
		t.Fatalf("CreateRepository: %v", err)
	}
	if created.ID == "" || created.BuildCount != 0 {
		t.Errorf("unexpected created repository: %+v", created)
	}

	byName, err := r.GetOneRepository(ctx, repository.GetOneRepositoryOptions{Name: "acme/widgets"})
	if err != nil {
		t.Fatalf("GetOneRepository: %v", err)
	}
	if byName.ID != created.ID || byName.Secret != "s3cr3t" {
		t.Errorf("lookup by name mismatch: %+v", byName)
	}
	if !reflect.DeepEqual(byName.RefWhitelist, []string{"refs/heads/main", "refs/tags/*"}) {
		t.Errorf("whitelist = %v", byName.RefWhitelist)
	}

	missing, err := r.GetOneRepository(ctx, repository.GetOneRepositoryOptions{Name: "acme/none"})
	if err != nil || missing.ID != "" {
		t.Errorf("missing repository: %+v err=%v", missing, err)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	_, r := setup(t)
	ctx := context.Background()
	opt := repository.CreateRepositoryOptions{Name: "acme/widgets", CloneURL: "https://example.com/a.git"}

	if _, err := r.CreateRepository(ctx, opt); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := r.CreateRepository(ctx, opt); !errors.Is(err, repository.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestUpdateKeepsSecretWhenNil(t *testing.T) {
	_, r := setup(t)
	ctx := context.Background()
	created, _ := r.CreateRepository(ctx, repository.CreateRepositoryOptions{Name: "acme/widgets", CloneURL: "https://example.com/a.git", Secret: "keep"})

	updated, err := r.UpdateRepository(ctx, repository.UpdateRepositoryOptions{
		ID: created.ID, Name: "acme/gadgets", CloneURL: "https://example.com/b.git",
	})
	if err != nil {
		t.Fatalf("UpdateRepository: %v", err)
	}
	if updated.Name != "acme/gadgets" || updated.Secret != "keep" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	secret := ""
	cleared, _ := r.UpdateRepository(ctx, repository.UpdateRepositoryOptions{
		ID: created.ID, Name: "acme/gadgets", CloneURL: "https://example.com/b.git", Secret: &secret,
	})
	if cleared.Secret != "" {
		t.Errorf("secret not cleared: %q", cleared.Secret)
	}

	none, err := r.UpdateRepository(ctx, repository.UpdateRepositoryOptions{ID: "missing", Name: "x/y", CloneURL: "u"})
	if err != nil || none.ID != "" {
		t.Errorf("update of missing id: %+v err=%v", none, err)
	}
}

func TestDeleteRepository(t *testing.T) {
	db, r := setup(t)
	ctx := context.Background()
	created, _ := r.CreateRepository(ctx, repository.CreateRepositoryOptions{Name: "acme/widgets", CloneURL: "https://example.com/a.git"})

	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO builds (id, repo_id, num, ref, commit_sha, status, date_queued) VALUES ('b1', ?, 0, 'refs/heads/main', ?, 'building', ?)`,
		created.ID, "0123456789abcdef0123456789abcdef01234567", now)
	if err != nil {
		t.Fatalf("insert build: %v", err)
	}

	if err := r.DeleteRepository(ctx, created.ID); !errors.Is(err, repository.ErrBuildInFlight) {
		t.Fatalf("err = %v, want ErrBuildInFlight", err)
	}

	if _, err := db.Exec(`UPDATE builds SET status = 'finished' WHERE id = 'b1'`); err != nil {
		t.Fatalf("update build: %v", err)
	}
	if err := r.DeleteRepository(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRepository: %v", err)
	}

	var builds int
	db.QueryRow(`SELECT COUNT(*) FROM builds`).Scan(&builds)
	if builds != 0 {
		t.Errorf("builds left after delete: %d", builds)
	}
	if err := r.DeleteRepository(ctx, created.ID); !errors.Is(err, repository.ErrRecordNotFound) {
		t.Errorf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestListRepositories(t *testing.T) {
	_, r := setup(t)
	ctx := context.Background()
	for _, name := range []string{"b/two", "a/one", "c/three"} {
		r.CreateRepository(ctx, repository.CreateRepositoryOptions{Name: name, CloneURL: "https://example.com/x.git"})
	}

	repos, total, err := r.ListRepositories(ctx, repository.ListRepositoriesOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if total != 3 || len(repos) != 2 || repos[0].Name != "a/one" {
		t.Errorf("total=%d repos=%+v", total, repos)
	}
}
