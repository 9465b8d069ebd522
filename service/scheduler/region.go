package scheduler

import (
	"context"
	"fmt"

	"github.com/viant/forkjoin/policy"
	"github.com/viant/forkjoin/progress"
)

// EnterRegion records one more active parallel region in a derived context
// and reports whether constructs opened at that depth may run concurrently
// according to the nesting policy carried by ctx.
func EnterRegion(ctx context.Context) (context.Context, bool) {
	depth := policy.RegionDepth(ctx) + 1
	parallel := policy.FromContext(ctx).Parallel(depth)
	ctx = policy.WithRegionDepth(ctx, depth)
	progress.UpdateCtx(ctx, progress.Delta{Regions: 1})
	return ctx, parallel
}

// Run executes task and converts a panic into an error so that one
// misbehaving unit of work cannot take down the worker executing it.
func Run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	progress.UpdateCtx(ctx, progress.Delta{Tasks: 1})
	return task(ctx)
}
