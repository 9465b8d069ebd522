package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline_Go(t *testing.T) {
	spawner := NewInline(context.Background())

	var order []int
	for i := 0; i < 3; i++ {
		index := i
		spawner.Go(func(ctx context.Context) error {
			order = append(order, index)
			return nil
		})
	}
	require.NoError(t, spawner.Wait())
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestInline_ErrorAggregation(t *testing.T) {
	spawner := NewInline(context.Background())
	boom := errors.New("boom")

	spawner.Go(func(ctx context.Context) error { return nil })
	spawner.Go(func(ctx context.Context) error { return boom })
	spawner.Go(func(ctx context.Context) error { panic("kaput") })

	err := spawner.Wait()
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "kaput")

	// Already reported; a later Wait returns nil.
	assert.NoError(t, spawner.Wait())
}

func TestInline_ForEach(t *testing.T) {
	spawner := NewInline(context.Background())

	var visited []int
	require.NoError(t, spawner.ForEach(4, func(ctx context.Context, index int) error {
		visited = append(visited, index)
		return nil
	}))
	assert.Equal(t, []int{0, 1, 2, 3}, visited)

	err := spawner.ForEach(2, func(ctx context.Context, index int) error {
		if index == 1 {
			return fmt.Errorf("bad index")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iteration 1")
}

func TestEnterRegion(t *testing.T) {
	ctx := context.Background()

	ctx, parallel := EnterRegion(ctx)
	assert.True(t, parallel)

	ctx, parallel = EnterRegion(ctx)
	assert.True(t, parallel)

	// Default policy allows two active levels.
	_, parallel = EnterRegion(ctx)
	assert.False(t, parallel)
}
