// Package lane owns the pool of reusable worker identities and is the only
// component allowed to mutate the free list.  Scheduler backends that cannot
// provide a stable worker index of their own acquire and return lanes here.
package lane
