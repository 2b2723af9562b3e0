package state

import (
	"github.com/janpfeifer/hexhive/internal/generics"
)

// MaxSlideNeighbours is the maximum number of occupied neighbours of a cell for a piece to be
// able to enter it: a cell boxed in by 5 or 6 pieces has no clearance for a tile to slide in.
const MaxSlideNeighbours = 4

// canEnter returns whether a piece can be put at pos, assuming the piece at ignore has been
// lifted: pos must be eligible, empty, touch the hive and pass the slide-in clearance.
func (b *Board) canEnter(pos, ignore Pos) bool {
	if !b.Eligible(pos) {
		return false
	}
	if pos != ignore && b.HasPiece(pos) {
		return false
	}
	numOccupied := b.CountOccupiedNeighbours(pos, ignore)
	return numOccupied >= 1 && numOccupied <= MaxSlideNeighbours
}

// PlacementPositions enumerates the empty positions where player can introduce a new piece
// from their reserve. It doesn't check that the reserve is non-empty: that is up to the caller.
//
//   - On an empty board only the center can be used.
//   - With exactly one piece on the board (the opponent's first), any of its neighbours.
//   - Otherwise, positions touching at least one of player's pieces and no piece of the opponent,
//     with enough clearance (see MaxSlideNeighbours).
func (b *Board) PlacementPositions(player PlayerID) generics.Set[Pos] {
	if b.numPieces == 0 {
		return generics.SetWith(b.Center())
	}
	placements := generics.MakeSet[Pos]()
	if b.numPieces == 1 {
		for first := range b.OccupiedPositionsIter() {
			for _, pos := range first.NeighboursIter(b.size) {
				if b.Eligible(pos) {
					placements.Insert(pos)
				}
			}
		}
		return placements
	}

	// Enumerate all empty positions next to friendly pieces.
	candidates := generics.MakeSet[Pos]()
	for pos := range b.OccupiedPositionsIter() {
		if b.PieceAt(pos).Owner != player {
			continue
		}
		for _, next := range pos.NeighboursIter(b.size) {
			if !b.HasPiece(next) {
				candidates.Insert(next)
			}
		}
	}

	// Filter those down to only those that have no opponent neighbours.
	for pos := range candidates {
		if !b.canEnter(pos, pos) {
			continue
		}
		hasOpponentNeighbours := false
		for _, next := range pos.NeighboursIter(b.size) {
			if owner := b.PieceAt(next).Owner; owner != PlayerNone && owner != player {
				hasOpponentNeighbours = true
				break
			}
		}
		if !hasOpponentNeighbours {
			placements.Insert(pos)
		}
	}
	return placements
}
