package webhook

import "net/http"

const headerGiteaEvent = "X-Gitea-Event"

type giteaAdapter struct{}

func (giteaAdapter) Parse(header http.Header, body []byte) (Push, error) {
	if err := expectEvent(header, headerGiteaEvent, "push"); err != nil {
		return Push{}, err
	}

	var payload gogsPush
	if err := decode(body, &payload); err != nil {
		return Push{}, err
	}
	return payload.push(), nil
}
