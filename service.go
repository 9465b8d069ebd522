package forkjoin

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/forkjoin/policy"
	"github.com/viant/forkjoin/progress"
	"github.com/viant/forkjoin/service/lane"
	"github.com/viant/forkjoin/service/meta"
	"github.com/viant/forkjoin/service/scheduler"
	"github.com/viant/forkjoin/service/scheduler/resident"
	"github.com/viant/forkjoin/service/scheduler/spawning"
)

// Service wires a lane pool and a scheduler backend according to the
// configuration and exposes them behind one façade.
type Service struct {
	config      *Config
	configURL   string
	metaService *meta.Service
	pool        *lane.Pool
	scheduler   scheduler.Scheduler
}

// New creates the service.  Unless options say otherwise the spawning
// backend is used with one worker per CPU.  When WithConfigURL is supplied
// the document is resolved through the service's meta instance and its
// settings override earlier configuration options.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), "")
	}
	if s.configURL != "" {
		if err := s.metaService.Load(context.Background(), s.configURL, s.config); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", s.configURL, err)
		}
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	switch s.config.Backend {
	case BackendResident:
		backend, err := resident.New(resident.WithWorkers(s.config.Workers))
		if err != nil {
			return err
		}
		if err = backend.Start(context.Background()); err != nil {
			return err
		}
		s.scheduler = backend

	case BackendSpawning:
		var laneOptions []lane.Option
		if s.config.Lane.Validate {
			laneOptions = append(laneOptions, lane.WithValidation())
		}
		pool, err := lane.New(s.config.Workers, laneOptions...)
		if err != nil {
			return err
		}
		backend, err := spawning.New(pool, spawning.WithWorkers(s.config.Workers))
		if err != nil {
			return err
		}
		s.pool = pool
		s.scheduler = backend

	default:
		return fmt.Errorf("unknown backend %q", s.config.Backend)
	}
	return nil
}

// NewContext derives a context carrying the configured nesting policy and a
// fresh lane-usage tracker.  Every parallel entry point expects a context
// produced here (or any descendant of one).
func (s *Service) NewContext(ctx context.Context) context.Context {
	ctx = policy.WithPolicy(ctx, &s.config.Nesting)
	ctx, _ = progress.WithNewTracker(ctx, s.config.Workers, nil)
	return ctx
}

// Scheduler returns the configured backend.
func (s *Service) Scheduler() scheduler.Scheduler {
	return s.scheduler
}

// Pool returns the lane pool, or nil for the resident backend which hands
// out native worker identities and skips the pool entirely.
func (s *Service) Pool() *lane.Pool {
	return s.pool
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Shutdown stops the scheduler backend and closes the lane pool.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.scheduler.Shutdown(ctx)
}
