package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"flux-ci/config"
)

const driverName = "sqlite3"

const schema = `
CREATE TABLE IF NOT EXISTS repositories (
    id            TEXT PRIMARY KEY,
    name          TEXT UNIQUE NOT NULL,
    clone_url     TEXT NOT NULL,
    secret        TEXT NOT NULL DEFAULT '',
    ref_whitelist TEXT NOT NULL DEFAULT '[]',
    build_count   INTEGER NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS builds (
    id            TEXT PRIMARY KEY,
    repo_id       TEXT NOT NULL REFERENCES repositories(id) ON DELETE CASCADE,
    num           INTEGER NOT NULL,
    ref           TEXT NOT NULL,
    commit_sha    TEXT NOT NULL,
    status        TEXT NOT NULL,
    date_queued   DATETIME NOT NULL,
    date_started  DATETIME,
    date_finished DATETIME,
    UNIQUE (repo_id, num)
);

CREATE INDEX IF NOT EXISTS idx_builds_status ON builds (status);
`

// Connect opens the database file, creating its directory when missing, and
// applies the schema. The pool holds a single connection; every write is
// serialized through it.
func Connect(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database at %q: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	return db, nil
}

func dsn(cfg config.SQLiteConfig) string {
	busy := cfg.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate", cfg.Path, busy)
}
