package middleware

import (
	"flux-ci/pkg/log"
)

type Middleware struct {
	l        log.Logger
	apiToken string
}

// New creates the shared gin middleware. An empty apiToken makes Auth reject
// every request.
func New(l log.Logger, apiToken string) Middleware {
	return Middleware{
		l:        l,
		apiToken: apiToken,
	}
}
