package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"flux-ci/internal/build/repository"
	"flux-ci/pkg/log"
)

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

// New creates a SQLite-backed Repository for the build domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("build/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l, now: func() time.Time { return time.Now().UTC() }}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("build/repository/sqlite.%s", method)
}
