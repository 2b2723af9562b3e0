package cli_test

import (
	"bufio"
	"bytes"
	"context"
	"github.com/janpfeifer/hexhive/internal/controller"
	"github.com/janpfeifer/hexhive/internal/game"
	. "github.com/janpfeifer/hexhive/internal/state"
	. "github.com/janpfeifer/hexhive/internal/ui/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"strings"
	"testing"
)

func newController(t *testing.T) *controller.Controller {
	g, err := game.New(game.DefaultOptions())
	require.NoError(t, err)
	return controller.New(g)
}

func TestReadKey(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\x1b[A\x1b[B\x1b[C\x1bOD\r \x7fq\x1b[1;5A\x03\x1bh"))
	want := []string{KeyUp, KeyDown, KeyRight, KeyLeft, KeyEnter, KeySpace, KeyBackspace, "q", KeyUnknown, KeyCtrlC, KeyEscape, "h"}
	for ii, w := range want {
		key, err := ReadKey(r)
		require.NoError(t, err)
		assert.Equalf(t, w, key, "key #%d", ii)
	}
	_, err := ReadKey(r)
	assert.Equal(t, io.EOF, err)

	// A lone escape.
	r = bufio.NewReader(strings.NewReader("\x1b"))
	key, err := ReadKey(r)
	require.NoError(t, err)
	assert.Equal(t, KeyEscape, key)
}

func TestKeymap(t *testing.T) {
	km := DefaultKeymap()
	require.NoError(t, km.Validate())
	cmd, found := km.Lookup(KeyLeft)
	require.True(t, found)
	assert.Equal(t, CmdPrevious, cmd)
	assert.Equal(t, []string{KeyEnter, KeySpace}, km.KeysFor(CmdConfirm))
	ev, ok := CmdNext.Event()
	assert.True(t, ok)
	assert.Equal(t, controller.Next, ev)
	_, ok = CmdQuit.Event()
	assert.False(t, ok)

	km, err := ParseKeymap([]byte(`
a: previous
d: Next
escape: none
x: quit
`))
	require.NoError(t, err)
	cmd, _ = km.Lookup("a")
	assert.Equal(t, CmdPrevious, cmd)
	cmd, _ = km.Lookup("d")
	assert.Equal(t, CmdNext, cmd)
	_, found = km.Lookup(KeyEscape)
	assert.False(t, found)
	assert.Equal(t, []string{KeyBackspace}, km.KeysFor(CmdBack))
	assert.Contains(t, km.KeysFor(CmdQuit), "x")

	_, err = ParseKeymap([]byte("a: jump"))
	require.Error(t, err)
	_, err = ParseKeymap([]byte("enter: none\nspace: none"))
	require.Error(t, err, "no key left to confirm")
	_, err = ParseKeymap([]byte("- a\n- b"))
	require.Error(t, err, "not a mapping")

	km, err = LoadKeymap("")
	require.NoError(t, err)
	assert.Equal(t, DefaultKeymap(), km)
	_, err = LoadKeymap("/nonexistent/keymap.yaml")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	c := newController(t)
	ui := New(io.Discard, false, false, DefaultKeymap())

	out := ui.Render(c)
	assert.Contains(t, out, "Move #1")
	assert.Contains(t, out, " One :[G] G  G  S  S  A  A  A  Q  B  B ")
	assert.Contains(t, out, " Two : g  g  g  s  s  a  a  a  q  b  b ")
	assert.Contains(t, out, " * ", "center is the candidate of the highlighted source")
	assert.Contains(t, out, "One to play: select a piece (1 of 11: Grasshopper from the reserve)")
	assert.Contains(t, out, "confirm: enter/space")

	require.NoError(t, c.Handle(controller.Confirm))
	out = ui.Render(c)
	assert.Contains(t, out, "[*]")
	assert.Contains(t, out, "One: where to put the Grasshopper from the reserve? (1 of 1: (17, 17))")

	require.NoError(t, c.Handle(controller.Confirm))
	require.NoError(t, c.Handle(controller.Confirm))
	out = ui.Render(c)
	assert.Contains(t, out, "Move #2")
	assert.Contains(t, out, " G ")
	assert.Contains(t, out, " One : G  G  S  S  A  A  A  Q  B  B ")
	assert.Contains(t, out, " Two :[g]")

	// Board rows: the Grasshopper at the center and its 6 neighbours as candidates.
	lines := strings.Split(out, "\n")
	numCandidates := 0
	for _, line := range lines {
		numCandidates += strings.Count(line, " * ")
	}
	assert.Equal(t, NumNeighbors, numCandidates)
}

func TestRun(t *testing.T) {
	c := newController(t)
	var out bytes.Buffer
	ui := New(&out, false, false, DefaultKeymap())

	// Place the first Grasshopper at the center, then an unmapped key, then quit.
	g, err := ui.Run(context.Background(), c, strings.NewReader("\r\r\rxq"))
	require.NoError(t, err)
	assert.Equal(t, PlayerTwo, g.CurrentPlayer())
	assert.Equal(t, Piece{Bug: GRASSHOPPER, Owner: PlayerOne}, g.Board.PieceAt(g.Board.Center()))
	assert.Contains(t, out.String(), `Key "x" is not mapped`)

	// Errors from the controller are shown, and the loop ends with the input.
	out.Reset()
	g, err = ui.Run(context.Background(), c, strings.NewReader("p"))
	require.NoError(t, err)
	assert.Equal(t, PlayerTwo, g.CurrentPlayer())
	assert.Contains(t, out.String(), "illegal move")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ui.Run(ctx, c, strings.NewReader("q"))
	require.Error(t, err)
}

func TestKeyReader(t *testing.T) {
	readAll := func(input string, raw bool) (keys []string) {
		kr := NewKeyReader(strings.NewReader(input), raw)
		for {
			key, err := kr.Next()
			if err == io.EOF {
				return
			}
			require.NoError(t, err)
			keys = append(keys, key)
		}
	}

	// Line mode: the newline ending a non-empty line is not a key.
	assert.Equal(t, []string{"l"}, readAll("l\n", false))
	assert.Equal(t, []string{"l", "l", KeyEnter, KeyEscape}, readAll("ll\n\n\x1b\r\n", false))
	assert.Equal(t, []string{KeyEnter, KeyEnter, "q"}, readAll("\n\r\nq", false))
	assert.Empty(t, readAll("", false))

	// Raw mode: every byte counts.
	assert.Equal(t, []string{"l", KeyEnter}, readAll("l\n", true))
}

func TestRunLineMode(t *testing.T) {
	c := newController(t)
	ui := New(io.Discard, false, false, DefaultKeymap())

	// "l<enter>" only moves the cursor.
	_, err := ui.Run(context.Background(), c, strings.NewReader("l\n"))
	require.NoError(t, err)
	assert.Equal(t, controller.SelectSource, c.Stage())
	s, ok := c.Source()
	require.True(t, ok)
	assert.Equal(t, c.Sources()[1], s)

	// An empty line confirms.
	_, err = ui.Run(context.Background(), c, strings.NewReader("\n"))
	require.NoError(t, err)
	assert.Equal(t, controller.SelectDestination, c.Stage())
	s, _ = c.Source()
	assert.Equal(t, c.Sources()[1], s)

	// In raw mode the enter key press confirms.
	c = newController(t)
	ui.SetRaw(true)
	_, err = ui.Run(context.Background(), c, strings.NewReader("l\r"))
	require.NoError(t, err)
	assert.Equal(t, controller.SelectDestination, c.Stage())
}

func TestOutcome(t *testing.T) {
	g, err := game.New(game.DefaultOptions())
	require.NoError(t, err)
	over, _ := Outcome(g)
	assert.False(t, over)

	center := g.Board.Center()
	require.NoError(t, g.Board.Place(center, Piece{Bug: QUEEN, Owner: PlayerOne}))
	for _, pos := range g.Board.Neighbours(center) {
		require.NoError(t, g.Board.Place(pos, Piece{Bug: ANT, Owner: PlayerTwo}))
	}
	over, msg := Outcome(g)
	assert.True(t, over)
	assert.Contains(t, msg, "TWO PLAYER WINS")
}
