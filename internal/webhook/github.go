package webhook

import (
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"

	"flux-ci/internal/model"
)

const (
	headerGitHubEvent  = "X-Github-Event"
	headerHubSignature = "X-Hub-Signature"
)

// githubAdapter verifies with the HMAC-SHA1 X-Hub-Signature header.
type githubAdapter struct{}

func (githubAdapter) Parse(header http.Header, body []byte) (Push, error) {
	if err := expectEvent(header, headerGitHubEvent, "push"); err != nil {
		return Push{}, err
	}

	ev, err := parseGitHubPush(body)
	if err != nil {
		return Push{}, err
	}

	return Push{
		Event: model.PushEvent{
			Owner:           ev.GetRepo().GetOwner().GetName(),
			Name:            ev.GetRepo().GetName(),
			Ref:             ev.GetRef(),
			CommitSHA:       ev.GetAfter(),
			PresentedSecret: strings.TrimPrefix(header.Get(headerHubSignature), "sha1="),
		},
		Scheme: SchemeHMACSHA1,
	}, nil
}

// parseGitHubPush decodes a GitHub-compatible push payload.
func parseGitHubPush(body []byte) (*github.PushEvent, error) {
	if err := checkUTF8(body); err != nil {
		return nil, err
	}

	raw, err := github.ParseWebHook("push", body)
	if err != nil {
		return nil, malformed(err)
	}
	ev, ok := raw.(*github.PushEvent)
	if !ok {
		return nil, &ValidationError{Reason: ReasonMalformedPayload, Detail: "not a push payload"}
	}
	return ev, nil
}
