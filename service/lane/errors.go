package lane

import "errors"

// Common, reusable pool errors.  Using sentinel variables allows callers to
// reliably detect error conditions via errors.Is instead of brittle string
// comparisons.

var (
	// ErrPoolClosed is returned by Acquire and Release after Close; blocked
	// Acquire calls are woken up with this error as well.
	ErrPoolClosed = errors.New("lane: pool closed")

	// ErrForeignLane indicates that the supplied lane id was never issued by
	// this pool, or is not currently outstanding.
	ErrForeignLane = errors.New("lane: foreign lane")

	// ErrDoubleRelease indicates that a lane id was returned twice.  Without
	// validation enabled only the overflow of the free list is detectable;
	// see WithValidation.
	ErrDoubleRelease = errors.New("lane: double release")

	// ErrPoolOverflow marks unrecoverable protocol corruption: more lanes
	// were returned than the pool ever issued.  The free list no longer
	// reflects reality and every identity handed out from now on may
	// collide, so callers should treat this error as fatal.
	ErrPoolOverflow = errors.New("lane: free list overflow")
)
