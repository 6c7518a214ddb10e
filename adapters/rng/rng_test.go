package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draw(t *testing.T, r interface{ Float64() float64 }, n int) []float64 {
	t.Helper()
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()
	}
	return out
}

func TestSeededStreamIsReproducible(t *testing.T) {
	a := New()
	ctx := context.Background()

	r1, err := a.SeededStream(ctx, "dataset", 42)
	require.NoError(t, err)
	r2, err := a.SeededStream(ctx, "dataset", 42)
	require.NoError(t, err)
	assert.Equal(t, draw(t, r1, 20), draw(t, r2, 20))

	r3, err := a.SeededStream(ctx, "dataset", 43)
	require.NoError(t, err)
	r4, err := a.SeededStream(ctx, "dataset", 42)
	require.NoError(t, err)
	assert.NotEqual(t, draw(t, r3, 20), draw(t, r4, 20))

	_, err = a.SeededStream(ctx, "", 1)
	assert.Error(t, err)
}

func TestStreamSeparatesIndices(t *testing.T) {
	a := New()
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		s := DeriveSeed("yield_forest", i, 42)
		assert.False(t, seen[s], "seed collision at tree %d", i)
		seen[s] = true
	}

	r1, err := a.Stream(ctx, "crop_forest", 3, 42)
	require.NoError(t, err)
	r2, err := a.Stream(ctx, "crop_forest", 3, 42)
	require.NoError(t, err)
	assert.Equal(t, draw(t, r1, 10), draw(t, r2, 10))

	assert.NotEqual(t, DeriveSeed("crop_forest", 3, 42), DeriveSeed("yield_forest", 3, 42))
}

func TestStreamHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Stream(ctx, "x", 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
