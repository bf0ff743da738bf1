package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrFailedToDelete = errors.New("failed to delete record")

	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateName  = errors.New("duplicate repository name")
	// ErrBuildInFlight is returned when a repository still has a building build.
	ErrBuildInFlight = errors.New("build in flight")
)
