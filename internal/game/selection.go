package game

import (
	"fmt"
	"github.com/janpfeifer/hexhive/internal/generics"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
)

// Selection is a candidate source of an action: either a piece in a player's reserve
// (InReserve, by index) or a piece on the board (by position).
type Selection struct {
	InReserve bool

	// Player and Index of the reserve piece, if InReserve.
	Player state.PlayerID
	Index  int

	// Pos of the board piece, if not InReserve.
	Pos state.Pos
}

// ReserveSelection selects the piece at the given index of the player's reserve.
func ReserveSelection(player state.PlayerID, index int) Selection {
	return Selection{InReserve: true, Player: player, Index: index}
}

// BoardSelection selects the piece on the board at the given position.
func BoardSelection(pos state.Pos) Selection {
	return Selection{Pos: pos}
}

func (s Selection) String() string {
	if s.InReserve {
		return fmt.Sprintf("reserve(%s, #%d)", s.Player, s.Index)
	}
	return fmt.Sprintf("board%s", s.Pos)
}

// Piece returns the piece the selection refers to in the game, or state.NoPiece if it
// refers to nothing.
func (g *Game) Piece(s Selection) state.Piece {
	if !s.InReserve {
		return g.Board.PieceAt(s.Pos)
	}
	if s.Player != state.PlayerOne && s.Player != state.PlayerTwo {
		return state.NoPiece
	}
	reserve := g.Player(s.Player).Reserve
	if s.Index < 0 || s.Index >= len(reserve) {
		return state.NoPiece
	}
	return state.Piece{Bug: reserve[s.Index], Owner: s.Player}
}

// LegalSources lists the sources the current player can act from, in a stable order:
// first one entry per reserve piece (in reserve order), then the board pieces ordered by
// position.
//
// Sources without any legal destination are not listed: a reserve piece is listed only if
// there is some placement position, and a board piece only if it has some move. So an empty
// result means the player can only pass.
//
// Board pieces come from Board.PlayerMoves, so the one-hive check runs once per call.
func (g *Game) LegalSources() []Selection {
	sources, _ := g.legalSources()
	return sources
}

// legalSources also returns the destinations of the board sources, keyed by position.
func (g *Game) legalSources() (sources []Selection, moves map[state.Pos]generics.Set[state.Pos]) {
	current := g.Current
	reserve := g.Player(current).Reserve
	if len(reserve) > 0 && len(g.Board.PlacementPositions(current)) > 0 {
		mustPlaceQueen := g.mustPlaceQueen()
		for index, bug := range reserve {
			if mustPlaceQueen && bug != state.QUEEN {
				continue
			}
			sources = append(sources, ReserveSelection(current, index))
		}
	}
	if !g.canMove() {
		return
	}
	moves = g.Board.PlayerMoves(current)
	for pos := range g.Board.OccupiedPositionsIter() {
		if _, found := moves[pos]; found {
			sources = append(sources, BoardSelection(pos))
		}
	}
	return
}

// LegalDestinations returns the positions the selected piece can go to. It is empty if the
// selection is valid but the piece has nowhere to go.
//
// It returns an error wrapping state.ErrIllegalMove if the selection doesn't refer to a
// piece of the current player.
func (g *Game) LegalDestinations(s Selection) (generics.Set[state.Pos], error) {
	piece := g.Piece(s)
	if piece.IsEmpty() {
		return nil, errors.Wrapf(state.ErrIllegalMove, "nothing to select at %s", s)
	}
	if piece.Owner != g.Current {
		return nil, errors.Wrapf(state.ErrIllegalMove, "%s at %s doesn't belong to the current player %s",
			piece, s, g.Current)
	}
	if s.InReserve {
		if g.mustPlaceQueen() && piece.Bug != state.QUEEN {
			return generics.MakeSet[state.Pos](), nil
		}
		return g.Board.PlacementPositions(g.Current), nil
	}
	if !g.canMove() {
		return generics.MakeSet[state.Pos](), nil
	}
	return g.Board.MovablePositions(s.Pos), nil
}
