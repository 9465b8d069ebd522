package spawning

// Option customises the spawning backend.
type Option func(*Service)

// WithWorkers caps the number of concurrently running tasks.
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.WorkerCount = count
	}
}

// WithConfig sets the configuration for the service.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
