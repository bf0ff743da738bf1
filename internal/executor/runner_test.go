package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"flux-ci/internal/model"
)

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-c", "user.name=flux", "-c", "user.email=flux@example.com"}, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// sourceRepo creates a repository on branch main holding script as the build
// script and returns its path and head commit.
func sourceRepo(t *testing.T, script string) (string, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "init", "-q")
	if err := os.WriteFile(filepath.Join(dir, ".flux-build.sh"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "init")
	git(t, dir, "branch", "-M", "main")
	return dir, git(t, dir, "rev-parse", "HEAD")
}

func TestGitRunner(t *testing.T) {
	src, head := sourceRepo(t, "echo \"building #$FLUX_BUILD_NUM of $FLUX_REPOSITORY\"\n")

	tests := []struct {
		name   string
		commit string
	}{
		{"pushed commit", head},
		{"manual trigger", model.ZeroCommitSHA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			job := Job{
				Repository: model.Repository{Name: "acme/widgets", CloneURL: src},
				Build:      model.Build{ID: "b1", Num: 7, Ref: "refs/heads/main", CommitSHA: tt.commit},
				Workspace:  filepath.Join(t.TempDir(), "ws"),
				Log:        &out,
			}

			if err := NewGitRunner("git", ".flux-build.sh").Run(context.Background(), job); err != nil {
				t.Fatalf("Run: %v\n%s", err, out.String())
			}
			if !strings.Contains(out.String(), "building #7 of acme/widgets") {
				t.Errorf("script output missing from log:\n%s", out.String())
			}
			if got := git(t, job.Workspace, "rev-parse", "HEAD"); got != head {
				t.Errorf("checked out %s, want %s", got, head)
			}
		})
	}
}

func TestGitRunnerFailures(t *testing.T) {
	src, head := sourceRepo(t, "exit 3\n")

	t.Run("Script fails", func(t *testing.T) {
		var out bytes.Buffer
		err := NewGitRunner("git", ".flux-build.sh").Run(context.Background(), Job{
			Repository: model.Repository{Name: "acme/widgets", CloneURL: src},
			Build:      model.Build{Num: 1, Ref: "refs/heads/main", CommitSHA: head},
			Workspace:  filepath.Join(t.TempDir(), "ws"),
			Log:        &out,
		})
		if err == nil || !strings.Contains(err.Error(), "build script") {
			t.Errorf("err = %v, want a build script failure", err)
		}
	})

	t.Run("No script", func(t *testing.T) {
		var out bytes.Buffer
		err := NewGitRunner("git", "missing.sh").Run(context.Background(), Job{
			Repository: model.Repository{Name: "acme/widgets", CloneURL: src},
			Build:      model.Build{Num: 1, Ref: "refs/heads/main", CommitSHA: head},
			Workspace:  filepath.Join(t.TempDir(), "ws"),
			Log:        &out,
		})
		if err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})

	t.Run("Clone fails", func(t *testing.T) {
		var out bytes.Buffer
		err := NewGitRunner("git", ".flux-build.sh").Run(context.Background(), Job{
			Repository: model.Repository{Name: "acme/widgets", CloneURL: filepath.Join(t.TempDir(), "nope")},
			Build:      model.Build{Num: 1, Ref: "refs/heads/main", CommitSHA: head},
			Workspace:  filepath.Join(t.TempDir(), "ws"),
			Log:        &out,
		})
		if err == nil || !strings.Contains(err.Error(), "git clone") {
			t.Errorf("err = %v, want a clone failure", err)
		}
	})
}

func TestGitRunnerPing(t *testing.T) {
	src, _ := sourceRepo(t, "true\n")
	g := NewGitRunner("git", ".flux-build.sh")

	if err := g.PingCloneURL(context.Background(), src); err != nil {
		t.Errorf("reachable repository: %v", err)
	}
	if err := g.PingCloneURL(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing repository reported reachable")
	}
	if err := g.PingCloneURL(context.Background(), "--upload-pack=touch x"); !errors.Is(err, ErrInvalidCloneURL) {
		t.Errorf("option url = %v, want ErrInvalidCloneURL", err)
	}
}
