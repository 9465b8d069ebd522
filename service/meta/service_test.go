package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

type testConfig struct {
	Backend string `yaml:"backend"`
	Workers int    `yaml:"workers"`
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte("backend: spawning\nworkers: 3\n"), 0o644))

	service := New(afs.New(), "")
	ctx := context.Background()

	var config testConfig
	require.NoError(t, service.Load(ctx, location, &config))
	assert.Equal(t, "spawning", config.Backend)
	assert.Equal(t, 3, config.Workers)

	// The document is cached: a change on disk is invisible until Refresh.
	require.NoError(t, os.WriteFile(location, []byte("backend: resident\nworkers: 5\n"), 0o644))
	var cached testConfig
	require.NoError(t, service.Load(ctx, location, &cached))
	assert.Equal(t, "spawning", cached.Backend)

	service.Refresh(location)
	var reloaded testConfig
	require.NoError(t, service.Load(ctx, location, &reloaded))
	assert.Equal(t, "resident", reloaded.Backend)
	assert.Equal(t, 5, reloaded.Workers)
}

func TestService_LoadEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte("backend: ${env.FORKJOIN_BACKEND}\nworkers: 1\n"), 0o644))
	t.Setenv("FORKJOIN_BACKEND", "resident")

	var config testConfig
	require.NoError(t, New(afs.New(), "").Load(context.Background(), location, &config))
	assert.Equal(t, "resident", config.Backend)
}

func TestService_LoadBaseURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("workers: 7\n"), 0o644))

	var config testConfig
	require.NoError(t, New(afs.New(), dir).Load(context.Background(), "config.yaml", &config))
	assert.Equal(t, 7, config.Workers)
}

func TestService_LoadMissing(t *testing.T) {
	err := New(afs.New(), "").Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), &testConfig{})
	assert.Error(t, err)
}
