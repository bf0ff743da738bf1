package webhook

import (
	"net/http"
	"strings"

	"flux-ci/internal/model"
)

type bitbucketCloudPush struct {
	Repository struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Owner    struct {
			Username string `json:"username"`
		} `json:"owner"`
		Workspace struct {
			Slug string `json:"slug"`
		} `json:"workspace"`
	} `json:"repository"`
	Push struct {
		Changes []struct {
			New *struct {
				Type   string `json:"type"`
				Name   string `json:"name"`
				Target struct {
					Hash string `json:"hash"`
				} `json:"target"`
			} `json:"new"`
		} `json:"changes"`
	} `json:"push"`
}

func (p bitbucketCloudPush) owner() string {
	switch {
	case p.Repository.Workspace.Slug != "":
		return p.Repository.Workspace.Slug
	case p.Repository.Owner.Username != "":
		return p.Repository.Owner.Username
	}
	owner, _, _ := strings.Cut(p.Repository.FullName, "/")
	return owner
}

// bitbucketCloudAdapter handles Bitbucket Cloud. Deliveries carry no secret,
// so the repository must have an empty secret to accept them.
type bitbucketCloudAdapter struct{}

func (bitbucketCloudAdapter) Parse(header http.Header, body []byte) (Push, error) {
	if err := expectEvent(header, headerEventKey, "repo:push"); err != nil {
		return Push{}, err
	}

	var payload bitbucketCloudPush
	if err := decode(body, &payload); err != nil {
		return Push{}, err
	}

	ev := model.PushEvent{
		Owner: payload.owner(),
		Name:  payload.Repository.Name,
	}
	if changes := payload.Push.Changes; len(changes) > 0 && changes[0].New != nil {
		change := changes[0].New
		if change.Name != "" {
			kind := "tags/"
			if change.Type == "branch" {
				kind = "heads/"
			}
			ev.Ref = "refs/" + kind + change.Name
		}
		ev.CommitSHA = change.Target.Hash
	}

	return Push{Event: ev, Scheme: SchemeDirect}, nil
}
