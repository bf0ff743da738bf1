package webhook

import (
	"net/http"

	"flux-ci/internal/model"
)

const headerEventKey = "X-Event-Key"

// bitbucketPush is a Bitbucket Server repo:refs_changed payload.
type bitbucketPush struct {
	Repository struct {
		Name    string `json:"name"`
		Project struct {
			Name string `json:"name"`
		} `json:"project"`
	} `json:"repository"`
	Changes []struct {
		RefID  string `json:"refId"`
		ToHash string `json:"toHash"`
	} `json:"changes"`
}

// bitbucketAdapter handles Bitbucket Server, which signs with HMAC-SHA256
// when the hook has a secret.
type bitbucketAdapter struct{}

func (bitbucketAdapter) Parse(header http.Header, body []byte) (Push, error) {
	if err := expectEvent(header, headerEventKey, "repo:refs_changed"); err != nil {
		return Push{}, err
	}

	var payload bitbucketPush
	if err := decode(body, &payload); err != nil {
		return Push{}, err
	}

	ev := model.PushEvent{
		Owner: payload.Repository.Project.Name,
		Name:  payload.Repository.Name,
	}
	if len(payload.Changes) > 0 {
		ev.Ref = payload.Changes[0].RefID
		ev.CommitSHA = payload.Changes[0].ToHash
	}

	presented, scheme, fallback := signatureScheme(header, headerHubSignature, "sha256=", SchemeHMACSHA256)
	ev.PresentedSecret = presented

	return Push{Event: ev, Scheme: scheme, Fallback: fallback}, nil
}
