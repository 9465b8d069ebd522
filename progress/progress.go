// The tracker instance lives in the run context – every component that
// receives the context can atomically update the counters via the Delta
// helper without requiring a global registry.

package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/forkjoin/internal/clock"
)

// Delta represents an incremental counter change emitted by the lane pool or
// a scheduler backend.  The fields are signed and therefore can be either
// positive (increment) or negative (decrement).
type Delta struct {
	Acquired int
	Released int
	Regions  int
	Tasks    int
}

// Usage is a point-in-time copy of the tracker counters suitable for
// read-only inspection.
type Usage struct {
	// Identification – informative only, filled when the run starts.
	Capacity  int
	StartedAt time.Time

	// Counters – modified via Update().
	Acquired    int
	Released    int
	Outstanding int
	Peak        int
	Regions     int
	Tasks       int
}

// Tracker keeps aggregated lane counters for the root region and all its
// nested regions.  It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	usage    Usage
	onChange func(Usage)
}

// Update applies the supplied delta to the tracker.  It is safe to call from
// multiple goroutines.  If an onChange callback has been registered it will
// be invoked with a copy of the updated counters outside the critical section
// so that the callback can perform slow operations (e.g. JSON encoding, I/O)
// without blocking scheduler internals.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}

	t.mu.Lock()

	t.usage.Acquired += d.Acquired
	t.usage.Released += d.Released
	t.usage.Outstanding += d.Acquired - d.Released
	t.usage.Regions += d.Regions
	t.usage.Tasks += d.Tasks
	if t.usage.Outstanding > t.usage.Peak {
		t.usage.Peak = t.usage.Outstanding
	}

	snapshot := t.usage
	cb := t.onChange

	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (t *Tracker) Snapshot() Usage {
	if t == nil {
		return Usage{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

// OnChange registers a callback that is invoked after every successful
// Update.  Passing nil disables the callback.  Only one callback can be
// active; subsequent calls overwrite the previous value.
func (t *Tracker) OnChange(cb func(Usage)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Tracker, embeds it in a derived context and
// returns both.  The caller may optionally pass an onChange callback that
// will be invoked after every counter update.
func WithNewTracker(ctx context.Context, capacity int, onChange func(Usage)) (context.Context, *Tracker) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Tracker{
		usage: Usage{
			Capacity:  capacity,
			StartedAt: clock.Now(),
		},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Tracker from ctx.  The second return value is
// false when the context carries no tracker.
func FromContext(ctx context.Context) (*Tracker, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Tracker)
	return tr, ok
}

// GetSnapshot is a convenience wrapper that combines FromContext and
// Snapshot.  The boolean return value is false when the context does not
// carry a tracker.
func GetSnapshot(ctx context.Context) (Usage, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Usage{}, false
}

// UpdateCtx is a helper that looks up the tracker in ctx (if any) and applies
// the supplied delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
