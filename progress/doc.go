// Package progress keeps aggregated lane-usage counters for a parallel run
// so that tests and monitoring hooks can observe how many worker identities
// are outstanding at any moment without reaching into scheduler internals.
package progress
