package executor

import "errors"

var (
	ErrQueueFull       = errors.New("executor: build queue is full")
	ErrStopped         = errors.New("executor: stopped")
	ErrInvalidPath     = errors.New("executor: repository name is not usable as a path")
	ErrInvalidCloneURL = errors.New("executor: clone url must not start with '-'")
)
