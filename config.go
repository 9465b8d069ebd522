package forkjoin

import (
	"context"
	"fmt"
	"runtime"

	"github.com/viant/afs"
	"github.com/viant/forkjoin/policy"
	"github.com/viant/forkjoin/service/meta"
)

// Recognised scheduler backends.
const (
	// BackendResident runs tasks on resident workers that natively own a
	// stable lane index.
	BackendResident = "resident"

	// BackendSpawning runs tasks on a goroutine pool and borrows lanes from
	// the lane pool.
	BackendSpawning = "spawning"
)

// Config is a serialisable representation of the engine configuration.  It
// can be populated from JSON, YAML, environment variables, etc.  The
// zero-value is useful – all nested fields inherit their package defaults.

type Config struct {
	Backend string        `json:"backend" yaml:"backend"`
	Workers int           `json:"workers" yaml:"workers"`
	Nesting policy.Policy `json:"nesting" yaml:"nesting"`
	Lane    LaneConfig    `json:"lane" yaml:"lane"`
}

type LaneConfig struct {
	// Validate enables outstanding-lane bookkeeping so that double or
	// foreign releases fail loudly instead of corrupting the pool.
	Validate bool `json:"validate" yaml:"validate"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendSpawning,
		Workers: runtime.NumCPU(),
		Nesting: policy.Policy{MaxDepth: policy.DefaultMaxDepth},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Backend {
	case BackendResident, BackendSpawning:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.Nesting.MaxDepth < 0 {
		return fmt.Errorf("nesting.maxDepth must not be negative, got %d", c.Nesting.MaxDepth)
	}
	return nil
}

// LoadConfig reads a YAML/JSON configuration document from URL (any scheme
// supported by the abstract file system) and merges it over the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	config := DefaultConfig()
	metaService := meta.New(afs.New(), "")
	if err := metaService.Load(ctx, URL, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
