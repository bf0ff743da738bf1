package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

// CreateBuild inserts a queued Build numbered from the repository's build count.
func (r *implRepository) CreateBuild(ctx context.Context, opt repo.CreateBuildOptions) (model.Build, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("CreateBuild"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	b, err := r.insertNumbered(ctx, tx, opt)
	if err != nil {
		return model.Build{}, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("CreateBuild"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}
	return b, nil
}

// insertNumbered reads build_count, inserts the build with that num and
// increments the count, all inside tx.
func (r *implRepository) insertNumbered(ctx context.Context, tx *sql.Tx, opt repo.CreateBuildOptions) (model.Build, error) {
	var num int
	err := tx.QueryRowContext(ctx, `SELECT build_count FROM repositories WHERE id = ?`, opt.RepoID).Scan(&num)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, repo.ErrRecordNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s read count: %v", r.dsn("insertNumbered"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}

	b := model.Build{
		ID:         uuid.NewString(),
		RepoID:     opt.RepoID,
		Num:        num,
		Ref:        opt.Ref,
		CommitSHA:  opt.CommitSHA,
		Status:     model.BuildStatusQueued,
		DateQueued: r.now(),
	}

	const insert = `
		INSERT INTO builds (id, repo_id, num, ref, commit_sha, status, date_queued, date_started, date_finished)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL, NULL)`
	if _, err := tx.ExecContext(ctx, insert, b.ID, b.RepoID, b.Num, b.Ref, b.CommitSHA, string(b.Status), b.DateQueued); err != nil {
		r.l.Errorf(ctx, "%s insert: %v", r.dsn("insertNumbered"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}

	const bump = `UPDATE repositories SET build_count = build_count + 1, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, bump, b.DateQueued, opt.RepoID); err != nil {
		r.l.Errorf(ctx, "%s bump count: %v", r.dsn("insertNumbered"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}

	return b, nil
}

// GetOneBuild retrieves a single Build by the provided filters (AND condition).
// Returns zero-value Build (ID == "") when not found.
func (r *implRepository) GetOneBuild(ctx context.Context, opt repo.GetOneBuildOptions) (model.Build, error) {
	where, args := r.buildGetOneQuery(opt)
	query := fmt.Sprintf(`SELECT %s FROM builds WHERE %s LIMIT 1`, buildColumns, where)

	b, err := scanBuild(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneBuild"), err)
		return model.Build{}, repo.ErrFailedToGet
	}
	return b, nil
}

// ListBuilds returns a page of Builds, newest first, and the total count.
func (r *implRepository) ListBuilds(ctx context.Context, opt repo.ListBuildsOptions) ([]model.Build, int, error) {
	where, countArgs := r.buildListWhere(opt)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds WHERE `+where, countArgs...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListBuilds"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query, args := r.buildListQuery(opt)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListBuilds"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var builds []model.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListBuilds"), err)
			return nil, 0, repo.ErrFailedToList
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListBuilds"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return builds, total, nil
}

// TransitionBuild applies a conditional status change.
func (r *implRepository) TransitionBuild(ctx context.Context, opt repo.TransitionBuildOptions) (bool, error) {
	at := opt.At
	if at.IsZero() {
		at = r.now()
	}
	query, args := r.buildTransitionQuery(opt, at)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("TransitionBuild"), err)
		return false, repo.ErrFailedToUpdate
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("TransitionBuild"), err)
		return false, repo.ErrFailedToUpdate
	}
	return n == 1, nil
}

// DeleteBuild removes a Build unless it is building.
func (r *implRepository) DeleteBuild(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("DeleteBuild"), err)
		return repo.ErrFailedToDelete
	}
	defer tx.Rollback()

	if _, err := r.lockedStatus(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteBuild"), err)
		return repo.ErrFailedToDelete
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("DeleteBuild"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// RestartBuild deletes a Build that is not building and inserts its
// replacement in one transaction.
func (r *implRepository) RestartBuild(ctx context.Context, id string) (model.Build, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("RestartBuild"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	old, err := r.lockedStatus(ctx, tx, id)
	if err != nil {
		return model.Build{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id); err != nil {
		r.l.Errorf(ctx, "%s delete: %v", r.dsn("RestartBuild"), err)
		return model.Build{}, repo.ErrFailedToDelete
	}

	b, err := r.insertNumbered(ctx, tx, repo.CreateBuildOptions{
		RepoID:    old.RepoID,
		Ref:       old.Ref,
		CommitSHA: old.CommitSHA,
	})
	if err != nil {
		return model.Build{}, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("RestartBuild"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}
	return b, nil
}

// lockedStatus loads a build inside tx and refuses builds that are building.
func (r *implRepository) lockedStatus(ctx context.Context, tx *sql.Tx, id string) (model.Build, error) {
	query := fmt.Sprintf(`SELECT %s FROM builds WHERE id = ?`, buildColumns)
	b, err := scanBuild(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, repo.ErrRecordNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("lockedStatus"), err)
		return model.Build{}, repo.ErrFailedToGet
	}
	if b.Status == model.BuildStatusBuilding {
		return model.Build{}, repo.ErrBuildInFlight
	}
	return b, nil
}
