package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	repo "flux-ci/internal/gitrepo/repository"
	"flux-ci/internal/model"
)

const repoColumns = `id, name, clone_url, secret, ref_whitelist, build_count, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRepository(s scanner) (model.Repository, error) {
	var (
		rp        model.Repository
		whitelist string
	)
	if err := s.Scan(&rp.ID, &rp.Name, &rp.CloneURL, &rp.Secret, &whitelist, &rp.BuildCount, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
		return model.Repository{}, err
	}
	if whitelist != "" {
		if err := json.Unmarshal([]byte(whitelist), &rp.RefWhitelist); err != nil {
			return model.Repository{}, fmt.Errorf("decode ref_whitelist: %w", err)
		}
	}
	return rp, nil
}

func encodeWhitelist(patterns []string) string {
	if len(patterns) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(patterns)
	return string(b)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// CreateRepository inserts a new Repository with a zero build count.
func (r *implRepository) CreateRepository(ctx context.Context, opt repo.CreateRepositoryOptions) (model.Repository, error) {
	now := r.now()
	rp := model.Repository{
		ID:           uuid.NewString(),
		Name:         opt.Name,
		CloneURL:     opt.CloneURL,
		Secret:       opt.Secret,
		RefWhitelist: opt.RefWhitelist,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	const query = `
		INSERT INTO repositories (id, name, clone_url, secret, ref_whitelist, build_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, rp.ID, rp.Name, rp.CloneURL, rp.Secret, encodeWhitelist(rp.RefWhitelist), now, now)
	if isUniqueViolation(err) {
		return model.Repository{}, repo.ErrDuplicateName
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateRepository"), err)
		return model.Repository{}, repo.ErrFailedToInsert
	}
	return rp, nil
}

// GetOneRepository retrieves a single Repository by the provided filters (AND condition).
// Returns zero-value Repository (ID == "") when not found.
func (r *implRepository) GetOneRepository(ctx context.Context, opt repo.GetOneRepositoryOptions) (model.Repository, error) {
	var (
		conds []string
		args  []any
	)
	if opt.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, opt.ID)
	}
	if opt.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, opt.Name)
	}
	if len(conds) == 0 {
		return model.Repository{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM repositories WHERE %s LIMIT 1`, repoColumns, strings.Join(conds, " AND "))
	rp, err := scanRepository(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Repository{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneRepository"), err)
		return model.Repository{}, repo.ErrFailedToGet
	}
	return rp, nil
}

// ListRepositories returns a page of Repositories ordered by name and the total count.
func (r *implRepository) ListRepositories(ctx context.Context, opt repo.ListRepositoriesOptions) ([]model.Repository, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM repositories`).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListRepositories"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query := `SELECT ` + repoColumns + ` FROM repositories ORDER BY name`
	var args []any
	if opt.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, opt.Limit, max(opt.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListRepositories"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var repos []model.Repository
	for rows.Next() {
		rp, err := scanRepository(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListRepositories"), err)
			return nil, 0, repo.ErrFailedToList
		}
		repos = append(repos, rp)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListRepositories"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return repos, total, nil
}

// UpdateRepository updates a Repository by ID and returns the updated entity.
// build_count is never touched here.
func (r *implRepository) UpdateRepository(ctx context.Context, opt repo.UpdateRepositoryOptions) (model.Repository, error) {
	set := []string{"name = ?", "clone_url = ?", "ref_whitelist = ?", "updated_at = ?"}
	args := []any{opt.Name, opt.CloneURL, encodeWhitelist(opt.RefWhitelist), r.now()}
	if opt.Secret != nil {
		set = append(set, "secret = ?")
		args = append(args, *opt.Secret)
	}
	args = append(args, opt.ID)

	query := `UPDATE repositories SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return model.Repository{}, repo.ErrDuplicateName
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateRepository"), err)
		return model.Repository{}, repo.ErrFailedToUpdate
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Repository{}, nil
	}

	return r.GetOneRepository(ctx, repo.GetOneRepositoryOptions{ID: opt.ID})
}

// DeleteRepository removes a Repository and its builds.
func (r *implRepository) DeleteRepository(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("DeleteRepository"), err)
		return repo.ErrFailedToDelete
	}
	defer tx.Rollback()

	var building int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds WHERE repo_id = ? AND status = ?`, id, string(model.BuildStatusBuilding)).Scan(&building)
	if err != nil {
		r.l.Errorf(ctx, "%s count building: %v", r.dsn("DeleteRepository"), err)
		return repo.ErrFailedToDelete
	}
	if building > 0 {
		return repo.ErrBuildInFlight
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE repo_id = ?`, id); err != nil {
		r.l.Errorf(ctx, "%s delete builds: %v", r.dsn("DeleteRepository"), err)
		return repo.ErrFailedToDelete
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE id = ?`, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteRepository"), err)
		return repo.ErrFailedToDelete
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repo.ErrRecordNotFound
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("DeleteRepository"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
