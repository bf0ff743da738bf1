package usecase

import (
	"context"
	"strings"

	"flux-ci/internal/gitrepo"
)

// Ping reports whether the clone url can be listed by git.
func (uc *implUseCase) Ping(ctx context.Context, input gitrepo.PingInput) error {
	if err := validateCloneURL(input.CloneURL); err != nil {
		return err
	}
	if uc.pinger == nil {
		return gitrepo.ErrUnreachable
	}

	url := strings.TrimSpace(input.CloneURL)
	if err := uc.pinger.PingCloneURL(ctx, url); err != nil {
		uc.l.Warnf(ctx, "uc.Ping: %v", err)
		return gitrepo.ErrUnreachable
	}
	return nil
}
