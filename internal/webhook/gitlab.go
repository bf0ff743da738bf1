package webhook

import (
	"net/http"

	"flux-ci/internal/model"
)

const headerGitLabToken = "X-Gitlab-Token"

type gitlabPush struct {
	ObjectKind  string `json:"object_kind"`
	Ref         string `json:"ref"`
	CheckoutSHA string `json:"checkout_sha"`
	Project     struct {
		Name      string `json:"name"`
		Namespace string `json:"namespace"`
	} `json:"project"`
}

// gitlabAdapter reads the event kind from the body and the token from X-Gitlab-Token.
type gitlabAdapter struct{}

func (gitlabAdapter) Parse(header http.Header, body []byte) (Push, error) {
	var payload gitlabPush
	if err := decode(body, &payload); err != nil {
		return Push{}, err
	}
	if payload.ObjectKind != "push" && payload.ObjectKind != "tag_push" {
		return Push{}, invalidEvent(payload.ObjectKind)
	}

	return Push{
		Event: model.PushEvent{
			Owner:           payload.Project.Namespace,
			Name:            payload.Project.Name,
			Ref:             payload.Ref,
			CommitSHA:       payload.CheckoutSHA,
			PresentedSecret: header.Get(headerGitLabToken),
		},
		Scheme: SchemeDirect,
	}, nil
}
