package scheduler

import (
	"context"
)

// Task is one unit of parallel work.  Within a single task body the
// Scheduler's Lane may be called at most once, and when it is, Release must
// be called exactly once before the body returns – a lane that is never
// returned stays lost until the run ends.
type Task func(ctx context.Context) error

// Spawner issues work inside an active parallel region.  Implementations
// are not safe for concurrent use from multiple goroutines; spawn from the
// goroutine that entered the region, or from a task body via a nested
// Region.
type Spawner interface {
	// Go schedules task for execution.  Whether the task runs concurrently
	// or inline on the caller depends on the backend and the nesting depth.
	Go(task Task)

	// Wait blocks until every task issued through this spawner has finished
	// and returns their aggregated error, if any.  Each collected error is
	// reported by exactly one Wait call; the enclosing Region calls Wait
	// implicitly, so an error already returned to fn is not repeated.
	Wait() error

	// ForEach executes body for every index in [0, n), scheduling the
	// iterations like individual tasks, and blocks until all complete.
	ForEach(n int, body func(ctx context.Context, index int) error) error
}

// Scheduler presents fork-join execution atop exactly one backend.  The two
// backends are semantically equivalent from the caller's point of view but
// differ in where worker identities come from.
type Scheduler interface {
	// Region establishes a parallel region and runs fn inside it.  Tasks
	// spawned through the supplied Spawner execute concurrently while the
	// nesting policy allows; regions opened beyond the configured depth run
	// their constructs sequentially.  Region returns once fn returned and
	// every spawned task finished.
	Region(ctx context.Context, fn func(ctx context.Context, spawner Spawner) error) error

	// Lane returns the worker identity of the current unit of work.
	Lane(ctx context.Context) (int, error)

	// Release returns a lane obtained via Lane.  For backends with native
	// worker identities this is a no-op beyond sanity checks.
	Release(ctx context.Context, id int) error

	// Shutdown stops backend resources; outstanding regions must have
	// completed before calling it.
	Shutdown(ctx context.Context) error
}
