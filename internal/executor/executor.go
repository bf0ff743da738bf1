package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	buildRepo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
	gitrepoRepo "flux-ci/internal/gitrepo/repository"
)

// Start recovers builds left over by a previous process and starts the
// workers. Leftover building builds are marked error; queued builds are
// submitted again, oldest first.
func (e *Executor) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started || e.stopped {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	e.mu.Unlock()

	interrupted, _, err := e.builds.ListBuilds(ctx, buildRepo.ListBuildsOptions{
		Statuses: []model.BuildStatus{model.BuildStatusBuilding},
	})
	if err != nil {
		return fmt.Errorf("executor.Start list building: %w", err)
	}
	for _, b := range interrupted {
		e.finish(ctx, b, model.BuildStatusError)
		e.l.Warnf(ctx, "executor.Start: build %s #%d was interrupted, marked error", b.ID, b.Num)
	}

	pending, _, err := e.builds.ListBuilds(ctx, buildRepo.ListBuildsOptions{
		Statuses: []model.BuildStatus{model.BuildStatusQueued},
	})
	if err != nil {
		return fmt.Errorf("executor.Start list queued: %w", err)
	}
	slices.Reverse(pending)

	for i := 0; i < e.cfg.Workers; i++ {
		e.wg.Add(1)
		go e.work()
	}

	if len(pending) > 0 {
		e.l.Infof(ctx, "executor.Start: resubmitting %d queued builds", len(pending))
		go e.resubmit(pending)
	}

	e.l.Infof(ctx, "executor started with %d workers", e.cfg.Workers)
	return nil
}

// Shutdown stops accepting builds and waits for running ones. When ctx ends
// first, running builds are canceled and marked error.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return nil
	}
	e.stopped = true
	close(e.done)
	e.mu.Unlock()

	waited := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		e.cancel()
		return nil
	case <-ctx.Done():
		e.cancel()
		<-waited
		return ctx.Err()
	}
}

// Enqueue submits a build without blocking.
func (e *Executor) Enqueue(ctx context.Context, b model.Build) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}

	select {
	case e.queue <- b.ID:
		return nil
	default:
		return ErrQueueFull
	}
}

// Terminate cancels a running build. The worker records the final status.
func (e *Executor) Terminate(ctx context.Context, b model.Build) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cancel, ok := e.running[b.ID]
	if !ok {
		e.l.Debugf(ctx, "executor.Terminate: build %s is not running", b.ID)
		return nil
	}
	e.terminated[b.ID] = true
	cancel()
	return nil
}

// Purge removes a build's workspace and log file.
func (e *Executor) Purge(ctx context.Context, b model.Build) error {
	var errs []error

	rp, err := e.repos.GetOneRepository(ctx, gitrepoRepo.GetOneRepositoryOptions{ID: b.RepoID})
	if err != nil {
		errs = append(errs, err)
	} else if rp.ID != "" {
		dir, err := e.workspaceDir(rp, b)
		if err == nil {
			err = os.RemoveAll(dir)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if err := os.Remove(e.logPath(b)); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PurgeRepository removes every workspace of a repository.
func (e *Executor) PurgeRepository(ctx context.Context, rp model.Repository) error {
	dir, err := e.repoDir(rp)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

func (e *Executor) resubmit(pending []model.Build) {
	for _, b := range pending {
		select {
		case e.queue <- b.ID:
		case <-e.done:
			return
		}
	}
}

func (e *Executor) work() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			return
		case id := <-e.queue:
			e.process(id)
		}
	}
}

// process runs one build if it is still queued.
func (e *Executor) process(id string) {
	ctx := context.WithoutCancel(e.ctx)

	b, err := e.builds.GetOneBuild(ctx, buildRepo.GetOneBuildOptions{ID: id})
	if err != nil {
		e.l.Errorf(ctx, "executor.process GetOneBuild %s: %v", id, err)
		return
	}
	if b.ID == "" || b.Status != model.BuildStatusQueued {
		e.l.Debugf(ctx, "executor.process: build %s is no longer queued, skipping", id)
		return
	}

	rp, err := e.repos.GetOneRepository(ctx, gitrepoRepo.GetOneRepositoryOptions{ID: b.RepoID})
	if err != nil {
		e.l.Errorf(ctx, "executor.process GetOneRepository %s: %v", b.RepoID, err)
		return
	}
	if rp.ID == "" {
		e.l.Errorf(ctx, "executor.process: repository %s of build %s is gone", b.RepoID, id)
		e.finish(ctx, b, model.BuildStatusError)
		return
	}

	runCtx, cancel := context.WithCancel(e.ctx)
	defer cancel()

	// Registered before the transition, so a Terminate issued once the build
	// shows as building always finds it.
	e.mu.Lock()
	e.running[id] = cancel
	e.mu.Unlock()

	ok, err := e.builds.TransitionBuild(ctx, buildRepo.TransitionBuildOptions{
		ID:   id,
		From: []model.BuildStatus{model.BuildStatusQueued},
		To:   model.BuildStatusBuilding,
	})
	if err != nil || !ok {
		e.release(id)
		if err != nil {
			e.l.Errorf(ctx, "executor.process TransitionBuild %s: %v", id, err)
		}
		return
	}

	e.l.Infof(ctx, "Build #%d for repository %s started", b.Num, rp.Name)
	runErr := e.run(runCtx, rp, b)
	terminated := e.release(id)

	status := outcome(runErr, terminated)
	if status == model.BuildStatusError {
		e.l.Warnf(ctx, "Build #%d for repository %s failed: %v", b.Num, rp.Name, runErr)
	}
	b.Status = model.BuildStatusBuilding
	e.finish(ctx, b, status)
	e.l.Infof(ctx, "Build #%d for repository %s %s", b.Num, rp.Name, status)
}

func (e *Executor) run(ctx context.Context, rp model.Repository, b model.Build) error {
	dir, err := e.workspaceDir(rp, b)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(e.cfg.LogRoot, 0o755); err != nil {
		return err
	}

	logFile, err := os.OpenFile(e.logPath(b), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	return e.runner.Run(ctx, Job{
		Repository: rp,
		Build:      b,
		Workspace:  dir,
		Log:        logFile,
	})
}

// outcome picks the final status of a run. A run that succeeded is finished
// even if a terminate request landed after it returned.
func outcome(runErr error, terminated bool) model.BuildStatus {
	switch {
	case runErr == nil:
		return model.BuildStatusFinished
	case terminated:
		return model.BuildStatusStopped
	default:
		return model.BuildStatusError
	}
}

// release unregisters a running build and reports whether it was terminated.
func (e *Executor) release(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	terminated := e.terminated[id]
	delete(e.running, id)
	delete(e.terminated, id)
	return terminated
}

// finish moves a build out of its current non-terminal status.
func (e *Executor) finish(ctx context.Context, b model.Build, status model.BuildStatus) {
	_, err := e.builds.TransitionBuild(ctx, buildRepo.TransitionBuildOptions{
		ID:   b.ID,
		From: []model.BuildStatus{b.Status},
		To:   status,
	})
	if err != nil {
		e.l.Errorf(ctx, "executor.finish TransitionBuild %s -> %s: %v", b.ID, status, err)
	}
}

func (e *Executor) repoDir(rp model.Repository) (string, error) {
	owner, name := rp.Owner(), rp.ShortName()
	for _, part := range []string{owner, name} {
		if part == "" || part == "." || part == ".." || filepath.Base(part) != part {
			return "", ErrInvalidPath
		}
	}
	return filepath.Join(e.cfg.WorkspaceRoot, owner, name), nil
}

func (e *Executor) workspaceDir(rp model.Repository, b model.Build) (string, error) {
	dir, err := e.repoDir(rp)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprint(b.Num)), nil
}

func (e *Executor) logPath(b model.Build) string {
	return filepath.Join(e.cfg.LogRoot, b.ID+".log")
}
