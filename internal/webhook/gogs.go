package webhook

import (
	"net/http"

	"flux-ci/internal/model"
)

// gogsPush is the subset of a Gogs or Gitea push payload we read. Both
// servers put the shared secret in the body.
type gogsPush struct {
	Ref        string `json:"ref"`
	After      string `json:"after"`
	Secret     string `json:"secret"`
	Repository struct {
		Name  string `json:"name"`
		Owner struct {
			Username string `json:"username"`
		} `json:"owner"`
	} `json:"repository"`
}

func (p gogsPush) push() Push {
	return Push{
		Event: model.PushEvent{
			Owner:           p.Repository.Owner.Username,
			Name:            p.Repository.Name,
			Ref:             p.Ref,
			CommitSHA:       p.After,
			PresentedSecret: p.Secret,
		},
		Scheme: SchemeDirect,
	}
}

// gogsAdapter sends no event header that we check.
type gogsAdapter struct{}

func (gogsAdapter) Parse(_ http.Header, body []byte) (Push, error) {
	var payload gogsPush
	if err := decode(body, &payload); err != nil {
		return Push{}, err
	}
	return payload.push(), nil
}
