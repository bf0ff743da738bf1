package sqlite

import (
	"database/sql"
	"strings"
	"time"

	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

const buildColumns = `id, repo_id, num, ref, commit_sha, status, date_queued, date_started, date_finished`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(s scanner) (model.Build, error) {
	var (
		b        model.Build
		status   string
		started  sql.NullTime
		finished sql.NullTime
	)
	if err := s.Scan(&b.ID, &b.RepoID, &b.Num, &b.Ref, &b.CommitSHA, &status, &b.DateQueued, &started, &finished); err != nil {
		return model.Build{}, err
	}
	b.Status = model.BuildStatus(status)
	if started.Valid {
		t := started.Time
		b.DateStarted = &t
	}
	if finished.Valid {
		t := finished.Time
		b.DateFinished = &t
	}
	return b, nil
}

func (r *implRepository) buildGetOneQuery(opt repo.GetOneBuildOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if opt.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, opt.ID)
	}
	if opt.RepoID != "" {
		conds = append(conds, "repo_id = ?")
		args = append(args, opt.RepoID)
	}
	if opt.Num != nil {
		conds = append(conds, "num = ?")
		args = append(args, *opt.Num)
	}
	if len(conds) == 0 {
		return "1 = 0", nil
	}
	return strings.Join(conds, " AND "), args
}

func (r *implRepository) buildListWhere(opt repo.ListBuildsOptions) (string, []any) {
	conds := []string{"1 = 1"}
	var args []any
	if opt.RepoID != "" {
		conds = append(conds, "repo_id = ?")
		args = append(args, opt.RepoID)
	}
	if len(opt.Statuses) > 0 {
		conds = append(conds, "status IN ("+placeholders(len(opt.Statuses))+")")
		for _, s := range opt.Statuses {
			args = append(args, string(s))
		}
	}
	return strings.Join(conds, " AND "), args
}

func (r *implRepository) buildListQuery(opt repo.ListBuildsOptions) (string, []any) {
	where, args := r.buildListWhere(opt)
	query := `SELECT ` + buildColumns + ` FROM builds WHERE ` + where + ` ORDER BY date_queued DESC, num DESC`
	if opt.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, opt.Limit, max(opt.Offset, 0))
	}
	return query, args
}

// buildTransitionQuery builds the conditional UPDATE for a status change.
func (r *implRepository) buildTransitionQuery(opt repo.TransitionBuildOptions, at time.Time) (string, []any) {
	set := "status = ?"
	args := []any{string(opt.To)}
	switch {
	case opt.To == model.BuildStatusBuilding:
		set += ", date_started = ?"
		args = append(args, at)
	case opt.To.IsTerminal():
		set += ", date_finished = ?"
		args = append(args, at)
	}

	query := `UPDATE builds SET ` + set + ` WHERE id = ?`
	args = append(args, opt.ID)
	if len(opt.From) > 0 {
		query += ` AND status IN (` + placeholders(len(opt.From)) + `)`
		for _, s := range opt.From {
			args = append(args, string(s))
		}
	}
	return query, args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
