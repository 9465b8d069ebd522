package scheduler

import "errors"

var (
	// ErrNoLane is returned by Lane when the calling unit of work carries no
	// worker identity – typically because Lane was called outside a task or
	// loop body.
	ErrNoLane = errors.New("scheduler: no lane on calling context")

	// ErrShutdown is returned when a region is opened on a scheduler that
	// has already been shut down.
	ErrShutdown = errors.New("scheduler: shut down")
)
