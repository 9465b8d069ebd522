package lane

import (
	"context"
	"fmt"
	"sync"
)

// Pool hands out reusable integer worker identities in the range [0, size).
// Identities are kept in a FIFO free list so that the oldest-returned lane is
// issued first, spreading reuse evenly across waiters instead of hammering
// the lowest index.
//
// The zero value is not usable; construct with New.  A Pool is safe for
// concurrent use by multiple goroutines.
type Pool struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	free []int // FIFO, guarded by mu
	size int

	closed bool
	held   map[int]struct{} // outstanding lanes, nil unless WithValidation
}

// New creates a pool pre-populated with lanes 0..size-1 in ascending order.
func New(size int, options ...Option) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("lane: pool size must be positive, got %d", size)
	}
	p := &Pool{
		free: make([]int, size),
		size: size,
	}
	for i := 0; i < size; i++ {
		p.free[i] = i
	}
	for _, option := range options {
		option(p)
	}
	p.notEmpty = sync.NewCond(&p.mu)
	return p, nil
}

// Acquire removes and returns the lane at the front of the free list,
// blocking while the list is empty.  Blocking ends when another goroutine
// calls Release, when the pool is closed (ErrPoolClosed) or when ctx is
// cancelled.  A single Release wakes at most one waiter; waiters are served
// in arrival order.
//
// The caller owns the returned lane until it passes it back via Release –
// exactly once.  A lane that is never returned stays lost and future Acquire
// calls will block once the remaining lanes are exhausted; that backpressure
// is intended behaviour, not a failure.
func (p *Pool) Acquire(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	// Wake our cond wait when the context goes away; Broadcast rather than
	// Signal so a wakeup meant for a cancelled waiter cannot be swallowed.
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.notEmpty.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.free) == 0 && !p.closed && ctx.Err() == nil {
		p.notEmpty.Wait()
	}
	if p.closed {
		return -1, ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	id := p.free[0]
	p.free = p.free[1:]
	if p.held != nil {
		p.held[id] = struct{}{}
	}
	return id, nil
}

// Release appends id to the back of the free list and wakes one waiter.
// Only lanes previously issued by Acquire may be returned, exactly once
// each; without validation enabled the pool can only detect the subset of
// violations that overflow the free list, so the burden of exactly-once
// release rests with the caller.
func (p *Pool) Release(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if id < 0 || id >= p.size {
		return fmt.Errorf("%w: %d outside [0, %d)", ErrForeignLane, id, p.size)
	}
	if p.held != nil {
		if _, outstanding := p.held[id]; !outstanding {
			return fmt.Errorf("%w: lane %d is not outstanding", ErrDoubleRelease, id)
		}
		delete(p.held, id)
	}
	if len(p.free) >= p.size {
		return fmt.Errorf("%w: capacity %d", ErrPoolOverflow, p.size)
	}

	p.free = append(p.free, id)
	p.notEmpty.Signal()
	return nil
}

// Close marks the pool closed and wakes every blocked Acquire with
// ErrPoolClosed.  Lanes still outstanding are abandoned; closing twice
// returns ErrPoolClosed.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	p.closed = true
	p.free = nil
	p.held = nil
	p.notEmpty.Broadcast()
	return nil
}

// Size returns the fixed capacity the pool was created with.
func (p *Pool) Size() int {
	return p.size
}

// Free returns the number of lanes currently available.
func (p *Pool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Outstanding returns the number of lanes currently issued and not yet
// returned.
func (p *Pool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0
	}
	return p.size - len(p.free)
}
