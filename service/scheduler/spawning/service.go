package spawning

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/viant/forkjoin/progress"
	"github.com/viant/forkjoin/service/lane"
	"github.com/viant/forkjoin/service/scheduler"
	"github.com/viant/forkjoin/tracing"
)

// Config represents the spawning backend configuration.
type Config struct {
	// WorkerCount caps how many tasks run concurrently; it should not be
	// smaller than the lane pool or workers will starve waiting for lanes.
	WorkerCount int
}

// DefaultConfig returns the default backend configuration.
func DefaultConfig() Config {
	return Config{WorkerCount: runtime.NumCPU()}
}

// Service schedules tasks on a shared ants goroutine pool and issues worker
// identities from the lane pool.  When the goroutine pool is saturated the
// spawning caller runs the task itself (caller-runs policy); concurrency
// stays bounded because every task body still has to obtain a lane before
// touching per-worker state.
type Service struct {
	config Config
	pool   *ants.Pool
	lanes  *lane.Pool
}

// New creates a spawning backend issuing identities from lanes.
func New(lanes *lane.Pool, options ...Option) (*Service, error) {
	if lanes == nil {
		return nil, fmt.Errorf("spawning: lane pool is required")
	}
	s := &Service{config: DefaultConfig(), lanes: lanes}
	for _, option := range options {
		option(s)
	}
	if s.config.WorkerCount <= 0 {
		return nil, fmt.Errorf("spawning: worker count must be positive, got %d", s.config.WorkerCount)
	}
	pool, err := ants.NewPool(s.config.WorkerCount, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("spawning: failed to create goroutine pool: %w", err)
	}
	s.pool = pool
	return s, nil
}

// Region implements scheduler.Scheduler.
func (s *Service) Region(ctx context.Context, fn func(ctx context.Context, spawner scheduler.Spawner) error) (err error) {
	if s.pool.IsClosed() {
		return scheduler.ErrShutdown
	}
	ctx, span := tracing.StartSpan(ctx, "spawning.region", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	ctx, parallel := scheduler.EnterRegion(ctx)
	if !parallel {
		inline := scheduler.NewInline(ctx)
		err = errors.Join(fn(ctx, inline), inline.Wait())
		return err
	}
	g := &group{service: s, ctx: ctx}
	err = errors.Join(fn(ctx, g), g.Wait())
	return err
}

// Lane implements scheduler.Scheduler by borrowing an identity from the
// lane pool; the call blocks while every lane is outstanding.
func (s *Service) Lane(ctx context.Context) (int, error) {
	id, err := s.lanes.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	progress.UpdateCtx(ctx, progress.Delta{Acquired: 1})
	return id, nil
}

// Release implements scheduler.Scheduler by returning the identity to the
// lane pool, waking at most one blocked Lane call.
func (s *Service) Release(ctx context.Context, id int) error {
	if err := s.lanes.Release(id); err != nil {
		return err
	}
	progress.UpdateCtx(ctx, progress.Delta{Released: 1})
	return nil
}

// Shutdown releases the goroutine pool and closes the lane pool.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.pool.IsClosed() {
		return scheduler.ErrShutdown
	}
	s.pool.Release()
	if err := s.lanes.Close(); err != nil && !errors.Is(err, lane.ErrPoolClosed) {
		return err
	}
	return nil
}

var _ scheduler.Scheduler = (*Service)(nil)
