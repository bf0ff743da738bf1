package gitrepo

import "errors"

var (
	ErrRepoNotFound     = errors.New("repository not found")
	ErrDuplicateName    = errors.New("repository already exists")
	ErrInvalidName      = errors.New("invalid repository name, format must be owner/repo")
	ErrCloneURLRequired = errors.New("no clone url specified")
	ErrInvalidCloneURL  = errors.New("invalid clone url")
	ErrInvalidWhitelist = errors.New("invalid ref whitelist")
	ErrUnreachable      = errors.New("repository is not reachable")
	ErrCannotDelete     = errors.New("repository has a build in progress and cannot be deleted")
)
