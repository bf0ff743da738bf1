package build

import "flux-ci/internal/model"

// --- UseCase Inputs ---

type DispatchInput struct {
	RepoID    string
	Ref       string
	CommitSHA string
}

type TriggerInput struct {
	RepoID string
	Ref    string
	// CommitSHA may be empty; the build then records model.ZeroCommitSHA.
	CommitSHA string
}

type ListInput struct {
	RepoID string
	Limit  int
	Offset int
}

// --- UseCase Outputs ---

type DispatchOutput struct {
	Build model.Build
}

type StopOutput struct {
	Build model.Build
	// Terminated is set when the build was running and cancellation was requested.
	Terminated bool
}

type ListOutput struct {
	Builds []model.Build
	Total  int
	Limit  int
	Offset int
}
