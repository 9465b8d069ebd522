// Package scheduler defines the capability that bridges parallel workloads
// with the backing fork-join implementation.  Two conforming backends exist:
// resident workers that natively own a stable lane index, and a spawning
// thread pool that borrows lanes from the lane pool.  Callers program
// against the Scheduler interface and pick the backend at startup.
package scheduler
