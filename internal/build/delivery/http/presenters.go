package http

import (
	"flux-ci/internal/build"
	"flux-ci/internal/model"
	"flux-ci/pkg/response"
)

// --- Request DTOs ---

type triggerReq struct {
	RepoID    string `json:"-"` // populated from URI param
	Ref       string `json:"ref"        binding:"required"`
	CommitSHA string `json:"commit_sha"`
}

func (r triggerReq) toInput() build.TriggerInput {
	return build.TriggerInput{
		RepoID:    r.RepoID,
		Ref:       r.Ref,
		CommitSHA: r.CommitSHA,
	}
}

// ---

type listReq struct {
	RepoID string `form:"-"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (r listReq) toInput() build.ListInput {
	return build.ListInput{RepoID: r.RepoID, Limit: r.Limit, Offset: r.Offset}
}

// --- Response DTOs ---

type buildResp struct {
	ID           string             `json:"id"`
	RepoID       string             `json:"repo_id"`
	Num          int                `json:"num"`
	Ref          string             `json:"ref"`
	CommitSHA    string             `json:"commit_sha"`
	Status       string             `json:"status"`
	DateQueued   response.DateTime  `json:"date_queued"`
	DateStarted  *response.DateTime `json:"date_started,omitempty"`
	DateFinished *response.DateTime `json:"date_finished,omitempty"`
}

func newBuildResp(b model.Build) buildResp {
	return buildResp{
		ID:           b.ID,
		RepoID:       b.RepoID,
		Num:          b.Num,
		Ref:          b.Ref,
		CommitSHA:    b.CommitSHA,
		Status:       string(b.Status),
		DateQueued:   response.DateTime(b.DateQueued),
		DateStarted:  response.NewDateTime(b.DateStarted),
		DateFinished: response.NewDateTime(b.DateFinished),
	}
}

type detailResp struct {
	Build buildResp `json:"build"`
}

func (h *handler) newDetailResp(b model.Build) detailResp {
	return detailResp{Build: newBuildResp(b)}
}

type stopResp struct {
	Build      buildResp `json:"build"`
	Terminated bool      `json:"terminated"`
}

func (h *handler) newStopResp(out build.StopOutput) stopResp {
	return stopResp{Build: newBuildResp(out.Build), Terminated: out.Terminated}
}

type listResp struct {
	Builds []buildResp `json:"builds"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *handler) newListResp(out build.ListOutput) listResp {
	builds := make([]buildResp, len(out.Builds))
	for i, b := range out.Builds {
		builds[i] = newBuildResp(b)
	}
	return listResp{
		Builds: builds,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}
