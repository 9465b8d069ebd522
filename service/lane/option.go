package lane

// Option customises pool construction.
type Option func(*Pool)

// WithValidation enables outstanding-lane bookkeeping.  With validation on,
// returning a lane that is not outstanding fails immediately with
// ErrDoubleRelease or ErrForeignLane instead of corrupting the free list
// later.  The bookkeeping costs one map operation per Acquire/Release and is
// therefore opt-in.
func WithValidation() Option {
	return func(p *Pool) {
		p.held = make(map[int]struct{})
	}
}
