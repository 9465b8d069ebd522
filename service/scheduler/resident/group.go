package resident

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/forkjoin/internal/idgen"
	"github.com/viant/forkjoin/service/scheduler"
)

// group collects the tasks spawned within one parallel region.
type group struct {
	service *Service
	ctx     context.Context

	wg sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// Go hands the task to a resident worker.  A top-level spawn blocks until a
// worker accepts it; a spawn issued from inside a worker (nested region)
// runs inline on the current worker when no other worker is free, so that
// workers never wait on each other.
func (g *group) Go(task scheduler.Task) {
	g.wg.Add(1)
	label := idgen.New()
	sub := submission{
		ctx:  g.ctx,
		task: task,
		done: func(err error) {
			if err != nil {
				g.mu.Lock()
				g.errs = append(g.errs, fmt.Errorf("task %s: %w", label, err))
				g.mu.Unlock()
			}
			g.wg.Done()
		},
	}

	if _, onWorker := grantFromContext(g.ctx); onWorker {
		select {
		case g.service.tasks <- sub:
		default:
			// Every worker is busy; the current worker is one of them, so
			// execute here.  The lane index already on ctx stays valid.
			sub.done(scheduler.Run(g.ctx, task))
		}
		return
	}
	g.service.tasks <- sub
}

// Wait blocks until every spawned task finished and returns the aggregated
// error.  Collected errors are reported once; a later Wait still blocks but
// returns nil for them.
func (g *group) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	err := errors.Join(g.errs...)
	g.errs = nil
	return err
}

// ForEach schedules the loop body for every index like individual tasks and
// blocks until the whole iteration space is done.
func (g *group) ForEach(n int, body func(ctx context.Context, index int) error) error {
	loop := &group{service: g.service, ctx: g.ctx}
	for i := 0; i < n; i++ {
		index := i
		loop.Go(func(ctx context.Context) error {
			if err := body(ctx, index); err != nil {
				return fmt.Errorf("iteration %d: %w", index, err)
			}
			return nil
		})
	}
	return loop.Wait()
}

var _ scheduler.Spawner = (*group)(nil)
