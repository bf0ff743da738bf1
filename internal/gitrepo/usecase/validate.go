package usecase

import (
	"fmt"
	"strings"

	"flux-ci/internal/gitrepo"
	"flux-ci/internal/refpolicy"
)

// validateName requires the "owner/repo" form with both parts present.
func validateName(name string) error {
	if len(name) < 3 || strings.Count(name, "/") != 1 {
		return gitrepo.ErrInvalidName
	}
	owner, repo, _ := strings.Cut(name, "/")
	for _, part := range []string{owner, repo} {
		if part == "" || part == "." || part == ".." {
			return gitrepo.ErrInvalidName
		}
	}
	return nil
}

// validateCloneURL rejects empty urls and ones git would read as an option.
func validateCloneURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return gitrepo.ErrCloneURLRequired
	}
	if strings.HasPrefix(url, "-") {
		return gitrepo.ErrInvalidCloneURL
	}
	return nil
}

// validateWhitelist rejects entries the ref policy cannot compile.
func validateWhitelist(patterns []string) error {
	if err := refpolicy.Validate(patterns); err != nil {
		return fmt.Errorf("%w: %v", gitrepo.ErrInvalidWhitelist, err)
	}
	return nil
}

func cleanWhitelist(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
