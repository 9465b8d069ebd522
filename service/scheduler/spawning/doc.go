// Package spawning implements the scheduler backend on top of a goroutine
// pool whose workers carry no stable identity.  Worker lanes are instead
// borrowed from the lane pool for exactly the span of a task's critical
// section, which is what makes identities safe to use as array slots across
// nested regions.
package spawning
