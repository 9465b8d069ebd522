package meta

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads YAML/JSON assets via the abstract file system.  Loaded
// documents are cached by URL; use Refresh to force a reload on next use.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option

	mu    sync.RWMutex
	cache map[string][]byte
}

// New creates a meta service.  URIs passed to Load are resolved against
// baseURL unless they are already absolute.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{
		fs:      fs,
		baseURL: baseURL,
		options: options,
		cache:   make(map[string][]byte),
	}
}

// Load downloads the asset identified by URI, expands ${env.KEY}
// expressions and unmarshals the document into target.  YAML is a superset
// of JSON, so both encodings are accepted.
func (s *Service) Load(ctx context.Context, URI string, target interface{}) error {
	URL := s.url(URI)

	s.mu.RLock()
	data, ok := s.cache[URL]
	s.mu.RUnlock()

	if !ok {
		downloaded, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", URL, err)
		}
		data = []byte(expandEnvExpr(string(downloaded)))
		s.mu.Lock()
		s.cache[URL] = data
		s.mu.Unlock()
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}

// Refresh discards the cached copy of the asset so that the next Load call
// re-reads it from the underlying storage.
func (s *Service) Refresh(URI string) {
	URL := s.url(URI)
	s.mu.Lock()
	delete(s.cache, URL)
	s.mu.Unlock()
}

// url resolves URI against the configured base URL.
func (s *Service) url(URI string) string {
	if s.baseURL == "" || strings.Contains(URI, "://") || path.IsAbs(URI) {
		return URI
	}
	return url.Join(s.baseURL, URI)
}
