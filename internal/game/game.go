// Package game holds the state of a match: the board, the players with their reserves
// and whose turn it is. It answers which sources and destinations are legal for the
// current player, and applies placements and moves.
//
// A Game is never modified by its methods: Act, Apply and Pass return a new Game.
package game

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"slices"
)

// Player holds a player's identity and the pieces not yet placed.
type Player struct {
	ID state.PlayerID

	// Reserve of bugs not yet placed. The order is stable, and only used for display and
	// for selecting by index.
	Reserve []state.Bug
}

// NumPlaced returns how many pieces the player has put on the board so far.
func (p *Player) NumPlaced() int {
	return state.TotalPiecesPerPlayer - len(p.Reserve)
}

// HasInReserve returns whether the bug is still in the player's reserve.
func (p *Player) HasInReserve(bug state.Bug) bool {
	return slices.Contains(p.Reserve, bug)
}

// ReserveCounts returns how many pieces of each bug are left in the reserve, indexed by Bug.
func (p *Player) ReserveCounts() (counts [state.LastBug]int) {
	for _, bug := range p.Reserve {
		counts[bug]++
	}
	return
}

// Game is the whole state of a match.
type Game struct {
	// ID of the match, used to tag log lines.
	ID uuid.UUID

	Options Options
	Board   *state.Board
	Players [state.NumPlayers]Player

	// Current is the player to act.
	Current state.PlayerID

	// MoveNumber starts at 1 and is incremented after every action, including passes.
	MoveNumber int

	// History of the actions that led to this state.
	History []Action
}

// New creates a game with an empty board and both players holding the full initial reserve.
// PlayerOne starts.
func New(opts Options) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	board, err := state.NewBoard(opts.BoardSize)
	if err != nil {
		return nil, errors.WithMessage(err, "while creating new game")
	}
	g := &Game{
		ID:         uuid.New(),
		Options:    opts,
		Board:      board,
		Current:    state.PlayerOne,
		MoveNumber: 1,
	}
	for _, id := range []state.PlayerID{state.PlayerOne, state.PlayerTwo} {
		g.Players[id.Index()] = Player{ID: id, Reserve: slices.Clone(state.InitialReserve)}
	}
	klog.V(1).Infof("game %s: new game with options %s", g.ID, opts)
	return g, nil
}

// Clone returns a deep copy of the game, sharing nothing mutable with g.
func (g *Game) Clone() *Game {
	newG := &Game{}
	*newG = *g
	newG.Board = g.Board.Clone()
	for ii := range g.Players {
		newG.Players[ii].Reserve = slices.Clone(g.Players[ii].Reserve)
	}
	newG.History = slices.Clone(g.History)
	return newG
}

// CurrentPlayer returns the player to act.
func (g *Game) CurrentPlayer() state.PlayerID {
	return g.Current
}

// Player returns the player with the given id.
func (g *Game) Player(id state.PlayerID) *Player {
	return &g.Players[id.Index()]
}

// QueenSurrounded returns whether the Queen of the given player is on the board with all
// six neighbours occupied. It is only a query: deciding the end of the match is up to the
// caller.
func (g *Game) QueenSurrounded(player state.PlayerID) bool {
	for _, pos := range g.Board.FindPieces(state.Piece{Bug: state.QUEEN, Owner: player}) {
		if len(g.Board.OccupiedNeighbours(pos)) == state.NumNeighbors {
			return true
		}
	}
	return false
}

// mustPlaceQueen returns whether the current player is forced to place the Queen next,
// because of Options.QueenBy.
func (g *Game) mustPlaceQueen() bool {
	if g.Options.QueenBy <= 0 {
		return false
	}
	p := g.Player(g.Current)
	return p.HasInReserve(state.QUEEN) && p.NumPlaced() >= g.Options.QueenBy-1
}

// canMove returns whether the current player is allowed to move pieces on the board.
func (g *Game) canMove() bool {
	if g.mustPlaceQueen() {
		return false
	}
	return !g.Options.QueenToMove || !g.Player(g.Current).HasInReserve(state.QUEEN)
}

// String implements fmt.Stringer, with a short summary and the board.
func (g *Game) String() string {
	return fmt.Sprintf("Move #%d, %s to play\n%s", g.MoveNumber, g.Current, g.Board)
}
