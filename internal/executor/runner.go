package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"flux-ci/internal/model"
)

const pingTimeout = 15 * time.Second

// Job is one build handed to a Runner.
type Job struct {
	Repository model.Repository
	Build      model.Build
	// Workspace does not exist yet; the runner creates it.
	Workspace string
	Log       io.Writer
}

// Runner executes a build. It must return when ctx is canceled.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, job Job) error

func (f RunnerFunc) Run(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// GitRunner clones the repository, checks out the pushed commit and runs the
// build script found at the root of the checkout, if any.
type GitRunner struct {
	GitBinary   string
	BuildScript string
}

func NewGitRunner(gitBinary, buildScript string) GitRunner {
	if gitBinary == "" {
		gitBinary = "git"
	}
	return GitRunner{GitBinary: gitBinary, BuildScript: buildScript}
}

func (g GitRunner) Run(ctx context.Context, job Job) error {
	b := job.Build
	logf(job.Log, "build #%d of %s, ref %s, commit %s", b.Num, job.Repository.Name, b.Ref, b.CommitSHA)

	if err := g.command(ctx, job, "", "clone", "--quiet", "--", job.Repository.CloneURL, job.Workspace); err != nil {
		return fmt.Errorf("git clone: %w", err)
	}

	// Manual triggers carry no commit; build the tip of the ref instead.
	if b.CommitSHA == model.ZeroCommitSHA {
		if err := g.command(ctx, job, job.Workspace, "fetch", "--quiet", "origin", b.Ref); err != nil {
			return fmt.Errorf("git fetch: %w", err)
		}
		if err := g.command(ctx, job, job.Workspace, "checkout", "--quiet", "FETCH_HEAD"); err != nil {
			return fmt.Errorf("git checkout: %w", err)
		}
	} else if err := g.command(ctx, job, job.Workspace, "checkout", "--quiet", b.CommitSHA); err != nil {
		return fmt.Errorf("git checkout: %w", err)
	}

	if g.BuildScript == "" {
		logf(job.Log, "no build script configured")
		return nil
	}
	script := filepath.Join(job.Workspace, g.BuildScript)
	if _, err := os.Stat(script); errors.Is(err, os.ErrNotExist) {
		logf(job.Log, "no %s in repository, nothing to run", g.BuildScript)
		return nil
	}

	logf(job.Log, "running %s", g.BuildScript)
	cmd := exec.CommandContext(ctx, "sh", script)
	cmd.Dir = job.Workspace
	cmd.Env = append(os.Environ(),
		"FLUX_REPOSITORY="+job.Repository.Name,
		"FLUX_REF="+b.Ref,
		"FLUX_COMMIT="+b.CommitSHA,
		"FLUX_BUILD_NUM="+strconv.Itoa(b.Num),
		"FLUX_BUILD_ID="+b.ID,
	)
	cmd.Stdout = job.Log
	cmd.Stderr = job.Log
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build script: %w", err)
	}
	return nil
}

// PingCloneURL lists the remote's refs without cloning it.
func (g GitRunner) PingCloneURL(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "-") {
		return ErrInvalidCloneURL
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var out bytes.Buffer
	if err := g.command(ctx, Job{Log: &out}, "", "ls-remote", "--quiet", "--heads", url); err != nil {
		return fmt.Errorf("git ls-remote: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// command runs git with output into the build log. dir is the working
// directory, empty for the process one.
func (g GitRunner) command(ctx context.Context, job Job, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.GitBinary, args...)
	cmd.Dir = dir
	cmd.Stdout = job.Log
	cmd.Stderr = job.Log
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.Run()
}

func logf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "[%s] %s\n", time.Now().UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
}
