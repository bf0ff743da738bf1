package gitrepo

import "flux-ci/internal/model"

// --- UseCase Inputs ---

type CreateInput struct {
	Name         string
	CloneURL     string
	Secret       string
	RefWhitelist []string
}

type UpdateInput struct {
	ID           string
	Name         string
	CloneURL     string
	Secret       *string // nil keeps the stored secret
	RefWhitelist []string
}

type PingInput struct {
	CloneURL string
}

type ListInput struct {
	Limit  int
	Offset int
}

// --- UseCase Outputs ---

type ListOutput struct {
	Repositories []model.Repository
	Total        int
	Limit        int
	Offset       int
}
