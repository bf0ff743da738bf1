package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	repo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// memRepo is an in-memory build store keyed by build id.
type memRepo struct {
	mu         sync.Mutex
	builds     map[string]model.Build
	counts     map[string]int
	nextID     int
	createErr  error
	transition func(opt repo.TransitionBuildOptions) (bool, error)
}

func newMemRepo() *memRepo {
	return &memRepo{
		builds: map[string]model.Build{},
		counts: map[string]int{"repo-1": 0},
	}
}

func (m *memRepo) put(b model.Build) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.builds[b.ID] = b
}

func (m *memRepo) CreateBuild(ctx context.Context, opt repo.CreateBuildOptions) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return model.Build{}, m.createErr
	}
	return m.insert(opt)
}

func (m *memRepo) insert(opt repo.CreateBuildOptions) (model.Build, error) {
	num, ok := m.counts[opt.RepoID]
	if !ok {
		return model.Build{}, repo.ErrRecordNotFound
	}
	m.nextID++
	b := model.Build{
		ID:        fmt.Sprintf("b%d", m.nextID),
		RepoID:    opt.RepoID,
		Num:       num,
		Ref:       opt.Ref,
		CommitSHA: opt.CommitSHA,
		Status:    model.BuildStatusQueued,
	}
	m.counts[opt.RepoID] = num + 1
	m.builds[b.ID] = b
	return b, nil
}

func (m *memRepo) GetOneBuild(ctx context.Context, opt repo.GetOneBuildOptions) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds[opt.ID], nil
}

func (m *memRepo) ListBuilds(ctx context.Context, opt repo.ListBuildsOptions) ([]model.Build, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Build
	for _, b := range m.builds {
		if opt.RepoID == "" || b.RepoID == opt.RepoID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Num > out[j].Num })
	total := len(out)
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, total, nil
}

func (m *memRepo) TransitionBuild(ctx context.Context, opt repo.TransitionBuildOptions) (bool, error) {
	if m.transition != nil {
		return m.transition(opt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[opt.ID]
	if !ok {
		return false, nil
	}
	if len(opt.From) > 0 {
		match := false
		for _, s := range opt.From {
			match = match || b.Status == s
		}
		if !match {
			return false, nil
		}
	}
	b.Status = opt.To
	m.builds[b.ID] = b
	return true, nil
}

func (m *memRepo) DeleteBuild(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[id]
	if !ok {
		return repo.ErrRecordNotFound
	}
	if b.Status == model.BuildStatusBuilding {
		return repo.ErrBuildInFlight
	}
	delete(m.builds, id)
	return nil
}

func (m *memRepo) RestartBuild(ctx context.Context, id string) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.builds[id]
	if !ok {
		return model.Build{}, repo.ErrRecordNotFound
	}
	if old.Status == model.BuildStatusBuilding {
		return model.Build{}, repo.ErrBuildInFlight
	}
	delete(m.builds, id)
	return m.insert(repo.CreateBuildOptions{RepoID: old.RepoID, Ref: old.Ref, CommitSHA: old.CommitSHA})
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.builds)
}

type mockExecutor struct {
	enqueueErr error
	enqueued   []string
	terminated []string
	purged     []string
}

var errQueueFull = errors.New("queue full")

func (e *mockExecutor) Enqueue(ctx context.Context, b model.Build) error {
	if e.enqueueErr != nil {
		return e.enqueueErr
	}
	e.enqueued = append(e.enqueued, b.ID)
	return nil
}

func (e *mockExecutor) Terminate(ctx context.Context, b model.Build) error {
	e.terminated = append(e.terminated, b.ID)
	return nil
}

func (e *mockExecutor) Purge(ctx context.Context, b model.Build) error {
	e.purged = append(e.purged, b.ID)
	return nil
}
