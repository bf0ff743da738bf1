package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrFailedToDelete = errors.New("failed to delete record")

	// ErrRecordNotFound is returned by writes whose target row does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrBuildInFlight is returned when a write would remove a building build.
	ErrBuildInFlight = errors.New("build in flight")
)
