package idgen

import "github.com/google/uuid"

// New returns a new unique task label as string. It is implemented as a thin
// wrapper so tests can stub it.

var NewFunc = func() string { return uuid.New().String()[:8] }

func New() string { return NewFunc() }
