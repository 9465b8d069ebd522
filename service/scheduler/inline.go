package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/forkjoin/internal/idgen"
)

// Inline is the Spawner used by regions nested beyond the configured depth:
// every task executes immediately on the calling goroutine, mirroring how
// fork-join runtimes serialise constructs once nesting is exhausted.  Lane
// acquisition still works – the surrounding region's identity flows through
// the context untouched.
type Inline struct {
	ctx  context.Context
	errs []error
}

// NewInline returns an inline spawner bound to ctx.
func NewInline(ctx context.Context) *Inline {
	return &Inline{ctx: ctx}
}

// Go runs task on the calling goroutine before returning.
func (s *Inline) Go(task Task) {
	if err := Run(s.ctx, task); err != nil {
		s.errs = append(s.errs, fmt.Errorf("task %s: %w", idgen.New(), err))
	}
}

// Wait returns the errors collected so far; nothing is pending because Go
// executes synchronously.  Collected errors are reported once; a later Wait
// returns nil for them.
func (s *Inline) Wait() error {
	err := errors.Join(s.errs...)
	s.errs = nil
	return err
}

// ForEach runs body for every index in [0, n) sequentially.
func (s *Inline) ForEach(n int, body func(ctx context.Context, index int) error) error {
	var errs []error
	for i := 0; i < n; i++ {
		index := i
		if err := Run(s.ctx, func(ctx context.Context) error { return body(ctx, index) }); err != nil {
			errs = append(errs, fmt.Errorf("iteration %d: %w", index, err))
		}
	}
	return errors.Join(errs...)
}
