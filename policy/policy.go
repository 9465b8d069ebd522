// Package policy provides a simple, optional nesting-control layer that can
// be attached to a parallel run via context.  It is deliberately decoupled
// from the scheduler implementations so that using it is entirely opt-in –
// callers that do not embed a Policy in their context keep the default
// two-level nesting behaviour.

package policy

import "context"

// DefaultMaxDepth is the number of parallel regions allowed to be active one
// inside another before inner regions run sequentially.  Two levels cover the
// common task-spawns-a-parallel-loop shape; runtimes that default to a single
// level silently serialise nested constructs, which is a trap.
const DefaultMaxDepth = 2

// Policy represents the nesting settings for the current parallel run.
//
//   - MaxDepth caps how many regions may be active one inside another; a
//     region opened beyond the cap executes its constructs inline.
//   - Sequential forces every region to run inline regardless of depth.  It
//     is a debugging aid: a run that only misbehaves with Sequential off is a
//     run with a synchronisation bug.
//
// A nil *Policy means "parallel up to DefaultMaxDepth" and is therefore the
// zero-cost default.
type Policy struct {
	MaxDepth   int  `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	Sequential bool `json:"sequential,omitempty" yaml:"sequential,omitempty"`
}

// Parallel reports whether a region opened at the supplied depth (1 = the
// outermost region) is allowed to execute its constructs concurrently.
func (p *Policy) Parallel(depth int) bool {
	if p == nil {
		return depth <= DefaultMaxDepth
	}
	if p.Sequential {
		return false
	}
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return depth <= maxDepth
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

type depthKeyT struct{}

var depthKey depthKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the *Policy from ctx; nil when absent.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}

// WithRegionDepth records the number of currently active parallel regions in
// a derived context.
func WithRegionDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey, depth)
}

// RegionDepth returns the number of parallel regions already active on the
// calling path; zero outside any region.
func RegionDepth(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(depthKey).(int); ok {
		return v
	}
	return 0
}
