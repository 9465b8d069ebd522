package resident

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/viant/forkjoin/progress"
	"github.com/viant/forkjoin/service/scheduler"
	"github.com/viant/forkjoin/tracing"
)

// Config represents the resident backend configuration.
type Config struct {
	// WorkerCount is the number of resident workers; it also fixes the lane
	// index range [0, WorkerCount).
	WorkerCount int
}

// DefaultConfig returns the default backend configuration.
func DefaultConfig() Config {
	return Config{WorkerCount: runtime.NumCPU()}
}

// submission is one task handed to a worker together with its completion
// callback.
type submission struct {
	ctx  context.Context
	task scheduler.Task
	done func(error)
}

// Service dispatches tasks over an unbuffered channel to resident workers.
// The hand-off is blocking, so a region can never out-run the workers; a
// nested region spawning from inside a worker falls back to running tasks
// on the current worker when every other worker is busy, which keeps nested
// parallelism deadlock free.
type Service struct {
	config Config
	tasks  chan submission

	workerWg sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a resident backend.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if s.config.WorkerCount <= 0 {
		return nil, fmt.Errorf("resident: worker count must be positive, got %d", s.config.WorkerCount)
	}
	s.tasks = make(chan submission)
	return s, nil
}

// Start launches the resident workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return scheduler.ErrShutdown
	}
	if s.started {
		return nil
	}
	s.started = true
	for i := 0; i < s.config.WorkerCount; i++ {
		s.workerWg.Add(1)
		go s.run(i)
	}
	return nil
}

// run executes submissions with the worker's index stamped on the context.
func (s *Service) run(index int) {
	defer s.workerWg.Done()
	for sub := range s.tasks {
		ctx := withLane(sub.ctx, index)
		sub.done(scheduler.Run(ctx, sub.task))
	}
}

// Region implements scheduler.Scheduler.
func (s *Service) Region(ctx context.Context, fn func(ctx context.Context, spawner scheduler.Spawner) error) (err error) {
	s.mu.Lock()
	closed, started := s.closed, s.started
	s.mu.Unlock()
	if closed {
		return scheduler.ErrShutdown
	}
	if !started {
		return fmt.Errorf("resident: backend not started")
	}

	ctx, span := tracing.StartSpan(ctx, "resident.region", "INTERNAL")
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

// Lane implements scheduler.Scheduler; the identity comes from the worker
// executing the calling task, not from a pool.  The first call per task
// counts as an acquisition on the usage tracker so that both backends
// report the same counters for the same workload.
func (s *Service) Lane(ctx context.Context) (int, error) {
	g, ok := grantFromContext(ctx)
	if !ok {
		return -1, scheduler.ErrNoLane
	}
	if g.acquired.CompareAndSwap(false, true) {
		progress.UpdateCtx(ctx, progress.Delta{Acquired: 1})
	}
	return g.index, nil
}

// Release implements scheduler.Scheduler.  Resident lanes never leave their
// worker, so beyond checking that the caller returns its own identity this
// only records the first return per task on the usage tracker.
func (s *Service) Release(ctx context.Context, id int) error {
	g, ok := grantFromContext(ctx)
	if !ok {
		return scheduler.ErrNoLane
	}
	if id != g.index {
		return fmt.Errorf("resident: lane %d does not belong to this worker (own lane %d)", id, g.index)
	}
	if g.acquired.Load() && g.released.CompareAndSwap(false, true) {
		progress.UpdateCtx(ctx, progress.Delta{Released: 1})
	}
	return nil
}

// Shutdown stops the workers after the in-flight submissions drain.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return scheduler.ErrShutdown
	}
	s.closed = true
	if s.started {
		close(s.tasks)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workerWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ scheduler.Scheduler = (*Service)(nil)
