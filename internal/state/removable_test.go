package state_test

import (
	"fmt"
	"github.com/janpfeifer/hexhive/internal/generics"
	. "github.com/janpfeifer/hexhive/internal/state"
	. "github.com/janpfeifer/hexhive/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var (
	// Boards where pieces marked with upper case letters are removable, and lower case are not.
	// Ownership doesn't matter for the one-hive rule.
	testRemovableBoards = []string{
		// Closed ring: any piece can be lifted.
		`
..A
.A.A
....
.A.A
..A`,

		// Ring with a tail: the ring piece holding the tail can't be lifted.
		`
..A
....
..a
.A.A
....
.A.A
..A`,

		// Two rings joined by a bridge.
		`
..A...A
.A.A.A.A
....a
.A.A.A.A
..A...A`,

		// Test used for benchmark.
		benchmarkBoardText,
	}

	benchmarkBoardText = `
....A
.
....a...a
...A.A.a.a
..A.A.a
...A.A...a
..A.A
...A.A...a
....A
.........a
.
.........a
..........A`
)

// removableFromText builds a board from txt, and returns the positions with upper case pieces.
func removableFromText(txt string) (b *Board, removable generics.Set[Pos]) {
	b, _ = FromText(txt)
	removable = generics.MakeSet[Pos]()
	for pos := range b.OccupiedPositionsIter() {
		if b.PieceAt(pos).Owner == PlayerOne {
			removable.Insert(pos)
		}
	}
	return
}

func TestIsRemovableLine(t *testing.T) {
	for numPieces := 2; numPieces <= 7; numPieces++ {
		b := EmptyBoard()
		positions := make([]Pos, numPieces)
		pos := b.Center()
		for ii := range positions {
			positions[ii] = pos
			require.NoError(t, b.Place(pos, Piece{Bug: ANT, Owner: PlayerOne}))
			pos = Pos{pos.Row() + 1, pos.Col() + 1} // SouthEast.
		}
		for ii, pos := range positions {
			isEndpoint := ii == 0 || ii == numPieces-1
			assert.Equalf(t, isEndpoint, b.IsRemovable(pos), "line of %d pieces, piece #%d at %s", numPieces, ii, pos)
		}
		assert.Len(t, b.RemovablePositions(), 2)
	}
}

func TestIsRemovableTrivial(t *testing.T) {
	b := EmptyBoard()
	assert.True(t, b.IsConnected())
	assert.Empty(t, b.RemovablePositions())

	require.NoError(t, b.Place(b.Center(), Piece{Bug: QUEEN, Owner: PlayerOne}))
	assert.True(t, b.IsRemovable(b.Center()), "lifting the only piece leaves an empty, connected hive")
	assert.Equal(t, generics.SetWith(b.Center()), b.RemovablePositions())

	// Two pieces apart: the hive is broken, but lifting either leaves a single piece.
	require.NoError(t, b.Place(Pos{21, 17}, Piece{Bug: QUEEN, Owner: PlayerTwo}))
	assert.False(t, b.IsConnected())
	assert.True(t, b.IsRemovable(Pos{21, 17}))
	assert.Equal(t, generics.SetWith(b.Center(), Pos{21, 17}), b.RemovablePositions())
}

func TestRemovableSplitHive(t *testing.T) {
	// A connected pair plus a lone piece: only lifting the lone piece leaves a connected hive.
	b := BuildBoard([]PieceOnBoard{
		{Pos{17, 17}, PlayerOne, QUEEN},
		{Pos{15, 17}, PlayerOne, ANT},
		{Pos{25, 17}, PlayerTwo, ANT},
	})
	require.False(t, b.IsConnected())
	want := generics.SetWith(Pos{25, 17})
	assert.Equal(t, want, b.RemovablePositions())
	for pos := range b.OccupiedPositionsIter() {
		assert.Equalf(t, want.Has(pos), b.IsRemovable(pos), "IsRemovable(%s)", pos)
	}

	// Two pairs apart: nothing can be lifted.
	require.NoError(t, b.Place(Pos{27, 17}, Piece{Bug: SPIDER, Owner: PlayerTwo}))
	assert.Empty(t, b.RemovablePositions())
}

func TestRemovable(t *testing.T) {
	for boardIdx, txt := range testRemovableBoards {
		b, want := removableFromText(txt)
		fmt.Printf("> Board #%d:\n%s\n", boardIdx, b)
		require.True(t, b.IsConnected())

		got := b.RemovablePositions()
		require.Truef(t, want.Equal(got), "RemovablePositions(board #%d):\n\twant=%v\n\t got=%v", boardIdx, Sorted(want), Sorted(got))

		// The flood fill must agree with the articulation points.
		for pos := range b.OccupiedPositionsIter() {
			require.Equalf(t, want.Has(pos), b.IsRemovable(pos), "IsRemovable(board #%d, %s)", boardIdx, pos)
		}
	}
}

func BenchmarkRemovablePositions(b *testing.B) {
	board, _ := FromText(benchmarkBoardText)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.RemovablePositions()
	}
}

func BenchmarkIsRemovable(b *testing.B) {
	board, _ := FromText(benchmarkBoardText)
	positions := board.OccupiedPositions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pos := range positions {
			_ = board.IsRemovable(pos)
		}
	}
}
