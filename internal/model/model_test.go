package model

import "testing"

func TestRepositoryNameParts(t *testing.T) {
	repo := Repository{Name: "acme/widgets"}
	if repo.Owner() != "acme" || repo.ShortName() != "widgets" {
		t.Errorf("got owner=%q name=%q", repo.Owner(), repo.ShortName())
	}
}

func TestPushEventRepoName(t *testing.T) {
	ev := PushEvent{Owner: "acme", Name: "widgets"}
	if got := ev.RepoName(); got != "acme/widgets" {
		t.Errorf("RepoName() = %q", got)
	}
}

func TestBuildStatusIsTerminal(t *testing.T) {
	tests := map[BuildStatus]bool{
		BuildStatusQueued:   false,
		BuildStatusBuilding: false,
		BuildStatusFinished: true,
		BuildStatusStopped:  true,
		BuildStatusError:    true,
	}
	for status, want := range tests {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
