package game_test

import (
	"context"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPerft(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, "")
	want := []int64{1, 5, 150, 2430, 40662}
	maxDepth := len(want) - 1
	if testing.Short() {
		maxDepth = 3
	}
	for depth := 0; depth <= maxDepth; depth++ {
		count, err := game.Perft(ctx, g, depth, 4)
		require.NoError(t, err)
		assert.Equalf(t, want[depth], count, "perft(depth=%d)", depth)
	}

	// Sequential and parallel counts agree.
	count, err := game.Perft(ctx, g, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, want[3], count)
}

func TestPerftCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := game.Perft(ctx, newGame(t, ""), 3, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func BenchmarkPerft(b *testing.B) {
	opts := game.DefaultOptions()
	g, err := game.New(opts)
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = game.Perft(context.Background(), g, 3, 0)
	}
}
