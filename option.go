package forkjoin

import (
	"github.com/viant/forkjoin/service/meta"
	"github.com/viant/forkjoin/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service façade.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithBackend selects the scheduler backend (BackendResident or
// BackendSpawning).
func WithBackend(backend string) Option {
	return func(s *Service) { s.config.Backend = backend }
}

// WithWorkers sets the number of workers, which also fixes the lane range
// [0, count).
func WithWorkers(count int) Option {
	return func(s *Service) { s.config.Workers = count }
}

// WithMaxNestingDepth caps how many parallel regions may be active one
// inside another before inner regions run sequentially.
func WithMaxNestingDepth(depth int) Option {
	return func(s *Service) { s.config.Nesting.MaxDepth = depth }
}

// WithLaneValidation enables outstanding-lane bookkeeping on the lane pool.
func WithLaneValidation() Option {
	return func(s *Service) { s.config.Lane.Validate = true }
}

// WithMetaService sets the meta service used to resolve configuration and
// other declarative assets.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithConfigURL loads the configuration document from URL during New,
// resolved through the service's meta instance (see WithMetaService).
// Settings from the document override earlier configuration options.
func WithConfigURL(URL string) Option {
	return func(s *Service) { s.configURL = URL }
}

// WithTracing configures OpenTelemetry tracing for the service.  If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path.  The function is safe to call multiple
// times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin.  The function is safe to
// call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
