package executor

import (
	"context"
	"sync"

	buildRepo "flux-ci/internal/build/repository"
	"flux-ci/internal/model"
	gitrepoRepo "flux-ci/internal/gitrepo/repository"
	"flux-ci/pkg/log"
)

// BuildStore is the part of the build store the executor drives.
type BuildStore interface {
	GetOneBuild(ctx context.Context, opt buildRepo.GetOneBuildOptions) (model.Build, error)
	ListBuilds(ctx context.Context, opt buildRepo.ListBuildsOptions) ([]model.Build, int, error)
	TransitionBuild(ctx context.Context, opt buildRepo.TransitionBuildOptions) (bool, error)
}

// RepoStore resolves the repository a build belongs to.
type RepoStore interface {
	GetOneRepository(ctx context.Context, opt gitrepoRepo.GetOneRepositoryOptions) (model.Repository, error)
}

type Config struct {
	Workers       int
	QueueSize     int
	WorkspaceRoot string
	LogRoot       string
}

// Executor is a local worker pool running builds one per worker.
type Executor struct {
	l      log.Logger
	builds BuildStore
	repos  RepoStore
	runner Runner
	cfg    Config

	queue  chan string
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	running    map[string]context.CancelFunc
	terminated map[string]bool
	started    bool
	stopped    bool
}

// New creates an Executor. Builds are accepted right away but only picked up
// after Start.
func New(l log.Logger, builds BuildStore, repos RepoStore, runner Runner, cfg Config) *Executor {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		l:          l,
		builds:     builds,
		repos:      repos,
		runner:     runner,
		cfg:        cfg,
		queue:      make(chan string, cfg.QueueSize),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		running:    make(map[string]context.CancelFunc),
		terminated: make(map[string]bool),
	}
}
