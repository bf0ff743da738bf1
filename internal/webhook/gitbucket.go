package webhook

import (
	"net/http"

	"flux-ci/internal/model"
)

// gitbucketAdapter speaks the GitHub payload format. GitBucket only signs
// deliveries when the hook has a secret configured.
type gitbucketAdapter struct{}

func (gitbucketAdapter) Parse(header http.Header, body []byte) (Push, error) {
	if err := expectEvent(header, headerGitHubEvent, "push"); err != nil {
		return Push{}, err
	}

	ev, err := parseGitHubPush(body)
	if err != nil {
		return Push{}, err
	}

	presented, scheme, fallback := signatureScheme(header, headerHubSignature, "sha1=", SchemeHMACSHA1)
	return Push{
		Event: model.PushEvent{
			Owner:           ev.GetRepo().GetOwner().GetLogin(),
			Name:            ev.GetRepo().GetName(),
			Ref:             ev.GetRef(),
			CommitSHA:       ev.GetAfter(),
			PresentedSecret: presented,
		},
		Scheme:   scheme,
		Fallback: fallback,
	}, nil
}
