package model

import (
	"strings"
	"time"
)

// Repository is a tracked Git repository that webhooks may build.
type Repository struct {
	ID       string
	Name     string // "owner/repo", unique
	CloneURL string
	Secret   string
	// RefWhitelist holds ref patterns allowed to build. Empty allows every ref.
	RefWhitelist []string
	BuildCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Owner returns the part of Name before the slash.
func (r Repository) Owner() string {
	owner, _ := splitName(r.Name)
	return owner
}

// ShortName returns the part of Name after the slash.
func (r Repository) ShortName() string {
	_, name := splitName(r.Name)
	return name
}

func splitName(full string) (string, string) {
	owner, name, ok := strings.Cut(full, "/")
	if !ok {
		return "", full
	}
	return owner, name
}
