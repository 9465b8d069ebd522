package forkjoin

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/forkjoin/service/meta"
	"github.com/viant/forkjoin/service/scheduler"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(WithBackend("fibers"))
	assert.Error(t, err)

	_, err = New(WithWorkers(-1))
	assert.Error(t, err)

	_, err = New(WithMaxNestingDepth(-1))
	assert.Error(t, err)
}

func TestService_EndToEnd(t *testing.T) {
	for _, backend := range []string{BackendResident, BackendSpawning} {
		t.Run(backend, func(t *testing.T) {
			srv, err := New(WithBackend(backend), WithWorkers(2), WithLaneValidation())
			require.NoError(t, err)
			defer func() { _ = srv.Shutdown(context.Background()) }()

			ctx := srv.NewContext(context.Background())

			var mu sync.Mutex
			laneUse := map[int]int{}
			err = srv.Parallel(ctx, func(ctx context.Context, spawner scheduler.Spawner) error {
				for task := 0; task < 4; task++ {
					spawner.Go(func(ctx context.Context) error {
						return srv.WithLane(ctx, func(ctx context.Context, lane int) error {
							mu.Lock()
							laneUse[lane]++
							mu.Unlock()
							return nil
						})
					})
				}
				return nil
			})
			require.NoError(t, err)

			total := 0
			for id, count := range laneUse {
				assert.GreaterOrEqual(t, id, 0)
				assert.Less(t, id, 2)
				total += count
			}
			assert.Equal(t, 4, total)

			// Both backends report identical counters for the same workload.
			usage, ok := srv.Usage(ctx)
			require.True(t, ok)
			assert.Equal(t, 4, usage.Tasks)
			assert.GreaterOrEqual(t, usage.Regions, 1)
			assert.Equal(t, 4, usage.Acquired)
			assert.Equal(t, 4, usage.Released)
			assert.Equal(t, 0, usage.Outstanding)
			assert.Greater(t, usage.Peak, 0)
			assert.LessOrEqual(t, usage.Peak, 2)
		})
	}
}

func TestService_ForEachNestedInTask(t *testing.T) {
	for _, backend := range []string{BackendResident, BackendSpawning} {
		t.Run(backend, func(t *testing.T) {
			srv, err := New(WithBackend(backend), WithWorkers(2))
			require.NoError(t, err)
			defer func() { _ = srv.Shutdown(context.Background()) }()

			ctx := srv.NewContext(context.Background())

			var mu sync.Mutex
			visited := map[int]bool{}
			err = srv.Parallel(ctx, func(ctx context.Context, spawner scheduler.Spawner) error {
				spawner.Go(func(ctx context.Context) error {
					return srv.ForEach(ctx, 8, func(ctx context.Context, index int) error {
						return srv.WithLane(ctx, func(ctx context.Context, lane int) error {
							mu.Lock()
							visited[index] = true
							mu.Unlock()
							return nil
						})
					})
				})
				return nil
			})
			require.NoError(t, err)
			assert.Len(t, visited, 8)
		})
	}
}

func TestService_PoolAccessor(t *testing.T) {
	spawningSvc, err := New(WithBackend(BackendSpawning), WithWorkers(2))
	require.NoError(t, err)
	assert.NotNil(t, spawningSvc.Pool())
	assert.Equal(t, 2, spawningSvc.Pool().Size())
	_ = spawningSvc.Shutdown(context.Background())

	residentSvc, err := New(WithBackend(BackendResident), WithWorkers(2))
	require.NoError(t, err)
	assert.Nil(t, residentSvc.Pool())
	_ = residentSvc.Shutdown(context.Background())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "forkjoin.yaml")
	require.NoError(t, os.WriteFile(location, []byte(
		"backend: resident\nworkers: 3\nnesting:\n  maxDepth: 1\nlane:\n  validate: true\n"), 0o644))

	config, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, BackendResident, config.Backend)
	assert.Equal(t, 3, config.Workers)
	assert.Equal(t, 1, config.Nesting.MaxDepth)
	assert.True(t, config.Lane.Validate)

	require.NoError(t, os.WriteFile(location, []byte("backend: fibers\n"), 0o644))
	_, err = LoadConfig(context.Background(), location)
	assert.Error(t, err)
}

func TestService_ConfigURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forkjoin.yaml"), []byte(
		"backend: resident\nworkers: 3\n"), 0o644))

	// The document is resolved through the supplied meta service, so a
	// relative URI works against its base URL.
	srv, err := New(
		WithMetaService(meta.New(afs.New(), dir)),
		WithConfigURL("forkjoin.yaml"),
		WithWorkers(8))
	require.NoError(t, err)
	defer func() { _ = srv.Shutdown(context.Background()) }()

	assert.Equal(t, BackendResident, srv.Config().Backend)
	assert.Equal(t, 3, srv.Config().Workers)

	_, err = New(WithConfigURL(filepath.Join(dir, "absent.yaml")))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, BackendSpawning, config.Backend)
	assert.Greater(t, config.Workers, 0)
}
