package forkjoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/forkjoin/progress"
	"github.com/viant/forkjoin/service/scheduler"
)

// ---------------------------------------------------------------------------
// Convenience helpers
// ---------------------------------------------------------------------------

// Parallel opens a parallel region on the configured backend and runs fn
// inside it.  It returns after fn returned and every spawned task finished.
func (s *Service) Parallel(ctx context.Context, fn func(ctx context.Context, spawner scheduler.Spawner) error) error {
	return s.scheduler.Region(ctx, fn)
}

// ForEach runs body for every index in [0, n) inside a fresh parallel
// region and blocks until the whole iteration space is done.
func (s *Service) ForEach(ctx context.Context, n int, body func(ctx context.Context, index int) error) error {
	return s.scheduler.Region(ctx, func(ctx context.Context, spawner scheduler.Spawner) error {
		return spawner.ForEach(n, body)
	})
}

// WithLane obtains the worker lane for the current unit of work, runs fn
// with it and returns the lane afterwards.  The helper enforces the
// acquire-at-most-once / release-exactly-once contract that raw Lane and
// Release calls leave to caller discipline: a lane leaked by a forgotten
// release never comes back and eventually blocks the whole run.
func (s *Service) WithLane(ctx context.Context, fn func(ctx context.Context, lane int) error) error {
	id, err := s.scheduler.Lane(ctx)
	if err != nil {
		return err
	}
	runErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("lane %d body panicked: %v", id, r)
			}
		}()
		return fn(ctx, id)
	}()
	return errors.Join(runErr, s.scheduler.Release(ctx, id))
}

// Usage returns the lane-usage counters accumulated on ctx since
// NewContext.  The boolean return value is false when ctx carries no
// tracker.
func (s *Service) Usage(ctx context.Context) (progress.Usage, bool) {
	return progress.GetSnapshot(ctx)
}
