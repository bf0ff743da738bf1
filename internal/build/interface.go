package build

import (
	"context"

	"flux-ci/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Dispatch numbers and persists a queued build, then hands it to the executor.
	Dispatch(ctx context.Context, input DispatchInput) (DispatchOutput, error)
	// Trigger dispatches a build requested by hand rather than by a webhook.
	Trigger(ctx context.Context, input TriggerInput) (DispatchOutput, error)

	// Lifecycle
	Restart(ctx context.Context, id string) (DispatchOutput, error)
	Stop(ctx context.Context, id string) (StopOutput, error)
	Delete(ctx context.Context, id string) error

	// Read
	Detail(ctx context.Context, id string) (model.Build, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
}

// Executor runs builds. Calls return once the request is accepted; they do
// not wait for the build.
type Executor interface {
	Enqueue(ctx context.Context, b model.Build) error
	Terminate(ctx context.Context, b model.Build) error
	Purge(ctx context.Context, b model.Build) error
}
