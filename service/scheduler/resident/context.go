package resident

import (
	"context"
	"sync/atomic"
)

// grant records the worker identity stamped onto one task execution plus
// the acquire/release bookkeeping for that execution.  The flags make the
// usage counters count each task's lane at most once even when the body
// calls Lane or Release repeatedly.
type grant struct {
	index    int
	acquired atomic.Bool
	released atomic.Bool
}

type laneKeyT struct{}

var laneKey laneKeyT

// withLane stamps a fresh grant for the executing worker's index onto the
// task context.
func withLane(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, laneKey, &grant{index: index})
}

// grantFromContext returns the lane grant carried by ctx, if any.
func grantFromContext(ctx context.Context) (*grant, bool) {
	if ctx == nil {
		return nil, false
	}
	if g, ok := ctx.Value(laneKey).(*grant); ok {
		return g, true
	}
	return nil, false
}
