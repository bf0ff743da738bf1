package webhook

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"flux-ci/internal/model"
)

// Provider is the value of the "api" query parameter naming the sender.
type Provider string

const (
	ProviderGogs           Provider = "gogs"
	ProviderGitHub         Provider = "github"
	ProviderGitea          Provider = "gitea"
	ProviderGitBucket      Provider = "gitbucket"
	ProviderBitbucket      Provider = "bitbucket"
	ProviderBitbucketCloud Provider = "bitbucket-cloud"
	ProviderGitLab         Provider = "gitlab"
)

const commitSHALength = 40

// Push is a normalized push event together with the way its sender must be verified.
type Push struct {
	Event  model.PushEvent
	Scheme Scheme
	// Fallback is set when the provider signs deliveries but this one arrived
	// without a signature header.
	Fallback bool
}

// Adapter maps one provider's headers and body to a Push. Adapters hold no state.
type Adapter interface {
	Parse(header http.Header, body []byte) (Push, error)
}

var adapters = map[Provider]Adapter{
	ProviderGogs:           gogsAdapter{},
	ProviderGitHub:         githubAdapter{},
	ProviderGitea:          giteaAdapter{},
	ProviderGitBucket:      gitbucketAdapter{},
	ProviderBitbucket:      bitbucketAdapter{},
	ProviderBitbucketCloud: bitbucketCloudAdapter{},
	ProviderGitLab:         gitlabAdapter{},
}

// NewAdapter returns the adapter for provider.
func NewAdapter(provider string) (Adapter, error) {
	a, ok := adapters[Provider(provider)]
	if !ok {
		return nil, &ValidationError{Reason: ReasonUnknownProvider, Detail: provider}
	}
	return a, nil
}

// Normalize parses a delivery from provider and checks the fields every
// push must carry. The returned error is always a *ValidationError.
func Normalize(provider string, header http.Header, body []byte) (Push, error) {
	a, err := NewAdapter(provider)
	if err != nil {
		return Push{}, err
	}

	p, err := a.Parse(header, body)
	if err != nil {
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			err = malformed(err)
		}
		return Push{}, err
	}

	if err := validate(p.Event); err != nil {
		return Push{}, err
	}
	return p, nil
}

func validate(ev model.PushEvent) error {
	switch {
	case ev.Name == "":
		return missing("name")
	case ev.Owner == "":
		return missing("owner")
	case ev.Ref == "":
		return missing("ref")
	case ev.CommitSHA == "":
		return missing("commit")
	case len(ev.CommitSHA) != commitSHALength:
		return &ValidationError{Reason: ReasonInvalidCommitSHALength, Detail: strconv.Itoa(len(ev.CommitSHA))}
	}
	return nil
}

// decode checks the body is UTF-8 JSON and unmarshals it into v.
func decode(body []byte, v any) error {
	if err := checkUTF8(body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return malformed(err)
	}
	return nil
}

func checkUTF8(body []byte) error {
	if !utf8.Valid(body) {
		return &ValidationError{Reason: ReasonMalformedPayload, Detail: "body is not valid UTF-8"}
	}
	return nil
}

// expectEvent rejects the delivery unless header name carries want.
func expectEvent(header http.Header, name, want string) error {
	if got := header.Get(name); got != want {
		return invalidEvent(got)
	}
	return nil
}

// signatureScheme picks the HMAC scheme when the signature header is present
// and falls back to direct comparison of an empty value otherwise.
func signatureScheme(header http.Header, name, prefix string, hmacScheme Scheme) (string, Scheme, bool) {
	values, present := header[http.CanonicalHeaderKey(name)]
	if !present || len(values) == 0 {
		return "", SchemeDirect, true
	}
	return strings.TrimPrefix(values[0], prefix), hmacScheme, false
}
