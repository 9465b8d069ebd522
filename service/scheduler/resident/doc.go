// Package resident implements the scheduler backend with a fixed set of
// resident worker goroutines, each permanently owning its lane index.  The
// runtime itself hands out the worker identity, so no lane pool is involved
// and returning a lane is a no-op.
package resident
