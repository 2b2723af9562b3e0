package controller_test

import (
	. "github.com/janpfeifer/hexhive/internal/controller"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/janpfeifer/hexhive/internal/generics"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newController(t *testing.T) *Controller {
	g, err := game.New(game.DefaultOptions())
	require.NoError(t, err)
	return New(g)
}

func handleAll(t *testing.T, c *Controller, events ...Event) {
	for _, ev := range events {
		require.NoErrorf(t, c.Handle(ev), "handling %s at stage %s", ev, c.Stage())
	}
}

func TestParseEvent(t *testing.T) {
	for ev := Previous; ev < LastEvent; ev++ {
		parsed, err := ParseEvent(ev.String())
		require.NoError(t, err)
		assert.Equal(t, ev, parsed)
	}
	ev, err := ParseEvent(" Confirm ")
	require.NoError(t, err)
	assert.Equal(t, Confirm, ev)
	_, err = ParseEvent("jump")
	require.Error(t, err)
	require.Error(t, newController(t).Handle(LastEvent))
}

func TestSelectSourceCursor(t *testing.T) {
	c := newController(t)
	assert.Equal(t, SelectSource, c.Stage())
	require.Len(t, c.Sources(), state.TotalPiecesPerPlayer)
	s, ok := c.Source()
	require.True(t, ok)
	assert.Equal(t, game.ReserveSelection(state.PlayerOne, 0), s)
	_, ok = c.Destination()
	assert.False(t, ok)

	// Wraps around in both directions.
	handleAll(t, c, Previous)
	s, _ = c.Source()
	assert.Equal(t, state.TotalPiecesPerPlayer-1, s.Index)
	handleAll(t, c, Next, Next)
	s, _ = c.Source()
	assert.Equal(t, 1, s.Index)

	// Back does nothing at the first stage.
	handleAll(t, c, Back)
	assert.Equal(t, SelectSource, c.Stage())

	preview, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, generics.SetWith(c.Game().Board.Center()), preview)
}

func TestFullTurn(t *testing.T) {
	c := newController(t)
	g0 := c.Game()
	center := g0.Board.Center()

	// Select the Queen: index 8 of the initial reserve.
	for range 8 {
		handleAll(t, c, Next)
	}
	handleAll(t, c, Confirm)
	assert.Equal(t, SelectDestination, c.Stage())
	assert.Equal(t, []state.Pos{center}, c.Destinations())
	dst, ok := c.Destination()
	require.True(t, ok)
	assert.Equal(t, center, dst)

	// Back and forth between stages doesn't commit anything.
	handleAll(t, c, Back)
	assert.Equal(t, SelectSource, c.Stage())
	assert.Empty(t, c.Destinations())
	handleAll(t, c, Confirm, Next, Confirm)
	assert.Equal(t, ConfirmDestination, c.Stage())
	handleAll(t, c, Back)
	assert.Equal(t, SelectDestination, c.Stage())
	handleAll(t, c, Confirm, Next, Previous)
	assert.Equal(t, ConfirmDestination, c.Stage())
	assert.Same(t, g0, c.Game())

	// Commit.
	handleAll(t, c, Confirm)
	g1 := c.Game()
	assert.NotSame(t, g0, g1)
	assert.Equal(t, SelectSource, c.Stage())
	assert.Equal(t, state.PlayerTwo, g1.CurrentPlayer())
	assert.Equal(t, state.Piece{Bug: state.QUEEN, Owner: state.PlayerOne}, g1.Board.PieceAt(center))
	assert.Len(t, c.Sources(), state.TotalPiecesPerPlayer)
	assert.Empty(t, c.Destinations())
}

func TestDestinationsFollowSource(t *testing.T) {
	c := newController(t)
	center := c.Game().Board.Center()

	// One places the Queen at the center, Two a Grasshopper to its North.
	for range 8 {
		handleAll(t, c, Next)
	}
	handleAll(t, c, Confirm, Confirm, Confirm)
	handleAll(t, c, Confirm)
	require.Len(t, c.Destinations(), state.NumNeighbors)
	for {
		dst, _ := c.Destination()
		if dst == (state.Pos{15, 17}) {
			break
		}
		handleAll(t, c, Next)
	}
	handleAll(t, c, Confirm, Confirm)
	require.Equal(t, state.PlayerOne, c.Game().CurrentPlayer())

	// 10 pieces in reserve, and the last source is the Queen on the board.
	require.Len(t, c.Sources(), 11)
	handleAll(t, c, Previous)
	s, _ := c.Source()
	require.Equal(t, game.BoardSelection(center), s)
	handleAll(t, c, Confirm)
	assert.Equal(t, []state.Pos{{16, 16}, {16, 18}}, c.Destinations())

	// Changing the source recomputes the destinations.
	handleAll(t, c, Back, Previous)
	s, _ = c.Source()
	require.True(t, s.InReserve)
	preview, err := c.Preview()
	require.NoError(t, err)
	handleAll(t, c, Confirm)
	want := []state.Pos{{18, 16}, {18, 18}, {19, 17}}
	assert.Equal(t, want, c.Destinations())
	assert.Equal(t, generics.SetWith(want...), preview)
}

func TestEmptySources(t *testing.T) {
	g, err := game.New(game.DefaultOptions())
	require.NoError(t, err)
	c := New(g)
	err = c.Pass()
	assert.True(t, errors.Is(err, state.ErrIllegalMove), "can't pass with legal sources")

	// Two has an empty reserve and a Beetle, which doesn't move.
	require.NoError(t, g.Board.Place(g.Board.Center(), state.Piece{Bug: state.QUEEN, Owner: state.PlayerOne}))
	require.NoError(t, g.Board.Place(state.Pos{15, 17}, state.Piece{Bug: state.BEETLE, Owner: state.PlayerTwo}))
	g.Player(state.PlayerTwo).Reserve = nil
	g.Current = state.PlayerTwo
	c = New(g)

	assert.Empty(t, c.Sources())
	_, ok := c.Source()
	assert.False(t, ok)
	for ev := Previous; ev < LastEvent; ev++ {
		err = c.Handle(ev)
		require.Error(t, err)
		assert.True(t, errors.Is(err, state.ErrEmptySelectionSet))
	}
	_, err = c.Preview()
	assert.True(t, errors.Is(err, state.ErrEmptySelectionSet))

	require.NoError(t, c.Pass())
	assert.Equal(t, state.PlayerOne, c.Game().CurrentPlayer())
	assert.NotEmpty(t, c.Sources())
}
