package http

import (
	"flux-ci/internal/gitrepo"
	"flux-ci/internal/model"
	"flux-ci/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Name         string   `json:"name"      binding:"required"`
	CloneURL     string   `json:"clone_url" binding:"required"`
	Secret       string   `json:"secret"`
	RefWhitelist []string `json:"ref_whitelist"`
}

func (r createReq) toInput() gitrepo.CreateInput {
	return gitrepo.CreateInput{
		Name:         r.Name,
		CloneURL:     r.CloneURL,
		Secret:       r.Secret,
		RefWhitelist: r.RefWhitelist,
	}
}

// ---

type pingReq struct {
	URL string `json:"url" binding:"required"`
}

func (r pingReq) toInput() gitrepo.PingInput {
	return gitrepo.PingInput{CloneURL: r.URL}
}

// ---

type listReq struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r listReq) toInput() gitrepo.ListInput {
	return gitrepo.ListInput{Limit: r.Limit, Offset: r.Offset}
}

// ---

type updateReq struct {
	ID           string   `json:"-"` // populated from URI param
	Name         string   `json:"name"      binding:"required"`
	CloneURL     string   `json:"clone_url" binding:"required"`
	Secret       *string  `json:"secret"` // omitted keeps the stored secret
	RefWhitelist []string `json:"ref_whitelist"`
}

func (r updateReq) toInput() gitrepo.UpdateInput {
	return gitrepo.UpdateInput{
		ID:           r.ID,
		Name:         r.Name,
		CloneURL:     r.CloneURL,
		Secret:       r.Secret,
		RefWhitelist: r.RefWhitelist,
	}
}

// --- Response DTOs ---

type repoResp struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	CloneURL     string            `json:"clone_url"`
	HasSecret    bool              `json:"has_secret"`
	RefWhitelist []string          `json:"ref_whitelist"`
	BuildCount   int               `json:"build_count"`
	CreatedAt    response.DateTime `json:"created_at"`
	UpdatedAt    response.DateTime `json:"updated_at"`
}

func newRepoResp(r model.Repository) repoResp {
	whitelist := r.RefWhitelist
	if whitelist == nil {
		whitelist = []string{}
	}
	return repoResp{
		ID:           r.ID,
		Name:         r.Name,
		CloneURL:     r.CloneURL,
		HasSecret:    r.Secret != "",
		RefWhitelist: whitelist,
		BuildCount:   r.BuildCount,
		CreatedAt:    response.DateTime(r.CreatedAt),
		UpdatedAt:    response.DateTime(r.UpdatedAt),
	}
}

type detailResp struct {
	Repository repoResp `json:"repository"`
}

func (h *handler) newDetailResp(r model.Repository) detailResp {
	return detailResp{Repository: newRepoResp(r)}
}

type pingResp struct {
	Reachable bool `json:"reachable"`
}

type listResp struct {
	Repositories []repoResp `json:"repositories"`
	Total        int        `json:"total"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

func (h *handler) newListResp(out gitrepo.ListOutput) listResp {
	repos := make([]repoResp, len(out.Repositories))
	for i, r := range out.Repositories {
		repos[i] = newRepoResp(r)
	}
	return listResp{
		Repositories: repos,
		Total:        out.Total,
		Limit:        out.Limit,
		Offset:       out.Offset,
	}
}
