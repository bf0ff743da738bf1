package build

import "errors"

var (
	ErrBuildNotFound        = errors.New("build not found")
	ErrRepoNotFound         = errors.New("repository not found")
	ErrCannotDelete         = errors.New("build is in progress and cannot be deleted")
	ErrRestartWhileBuilding = errors.New("build is in progress and cannot be restarted")
	ErrRefRequired          = errors.New("ref is required")
	ErrInvalidCommitSHA     = errors.New("commit sha must be 40 characters")
)
