package state

import (
	"github.com/janpfeifer/hexhive/internal/generics"
)

// SpiderSteps is the exact number of slide steps of a Spider move.
const SpiderSteps = 3

// SlideTargets returns the generalized slide-targets for the piece at src: with src
// hypothetically lifted, every cell that is empty, touches the hive and has clearance to
// be entered (see MaxSlideNeighbours). The source itself is never included.
func (b *Board) SlideTargets(src Pos) generics.Set[Pos] {
	targets := generics.MakeSet[Pos]()
	for pos := range b.OccupiedPositionsIter() {
		if pos == src {
			continue
		}
		for _, next := range pos.NeighboursIter(b.size) {
			if next == src || targets.Has(next) {
				continue
			}
			if b.canEnter(next, src) {
				targets.Insert(next)
			}
		}
	}
	return targets
}

// slideReach performs a BFS from src over the slide-targets graph and returns the positions
// reached with their distance (number of slide steps). Each position is reached only once,
// at its shortest distance. If maxSteps > 0 the search stops at that distance.
func (b *Board) slideReach(src Pos, maxSteps int) map[Pos]int {
	targets := b.SlideTargets(src)
	distances := make(map[Pos]int, len(targets))
	frontier := []Pos{src}
	for steps := 1; len(frontier) > 0 && (maxSteps <= 0 || steps <= maxSteps); steps++ {
		var next []Pos
		for _, pos := range frontier {
			for _, neighbour := range pos.NeighboursIter(b.size) {
				if !targets.Has(neighbour) {
					continue
				}
				if _, visited := distances[neighbour]; visited {
					continue
				}
				distances[neighbour] = steps
				next = append(next, neighbour)
			}
		}
		frontier = next
	}
	return distances
}

// slideMovesAt returns the positions reached in exactly the given number of slide steps.
func (b *Board) slideMovesAt(src Pos, steps int) generics.Set[Pos] {
	poss := generics.MakeSet[Pos]()
	for pos, distance := range b.slideReach(src, steps) {
		if distance == steps {
			poss.Insert(pos)
		}
	}
	return poss
}

// queenMoves enumerates the valid moves for the Queen located at the given position:
// one slide step.
func (b *Board) queenMoves(srcPos Pos) generics.Set[Pos] {
	return b.slideMovesAt(srcPos, 1)
}

// spiderMoves enumerates the valid moves for the Spider located at the given position:
// exactly SpiderSteps slide steps, intermediate cells are not valid stops.
func (b *Board) spiderMoves(srcPos Pos) generics.Set[Pos] {
	return b.slideMovesAt(srcPos, SpiderSteps)
}

// antMoves enumerates the valid moves for the Ant located at the given position: any number
// of slide steps.
func (b *Board) antMoves(srcPos Pos) generics.Set[Pos] {
	poss := generics.MakeSet[Pos]()
	for pos := range b.slideReach(srcPos, 0) {
		poss.Insert(pos)
	}
	return poss
}

// grasshopperMoves enumerates the valid moves for the Grasshopper located at the given position:
// in each direction it jumps over a contiguous line of at least one piece, and lands on the
// first empty cell. If the line runs into the boundary, that direction has no move.
func (b *Board) grasshopperMoves(srcPos Pos) generics.Set[Pos] {
	poss := generics.MakeSet[Pos]()
	for _, direction := range Directions {
		steps, tgtPos, ok := b.grasshopperNextFree(srcPos, direction)
		if ok && steps > 0 && b.Eligible(tgtPos) {
			poss.Insert(tgtPos)
		}
	}
	return poss
}

// grasshopperNextFree walks from srcPos in the given direction while the cells are occupied.
// It returns the number of pieces jumped and the first empty cell, or ok=false if it went
// off the board.
func (b *Board) grasshopperNextFree(srcPos Pos, direction Direction) (steps int, tgtPos Pos, ok bool) {
	tgtPos, ok = srcPos.step(direction, b.size)
	for ok && b.HasPiece(tgtPos) {
		steps++
		tgtPos, ok = tgtPos.step(direction, b.size)
	}
	return
}

// beetleMoves has no moves: climbing on top of the hive is not supported.
func (b *Board) beetleMoves(Pos) generics.Set[Pos] {
	return generics.MakeSet[Pos]()
}

// MovablePositions returns the legal destinations of the piece at srcPos, according to its bug.
//
// If there is no piece at srcPos, or lifting it would break the hive (see IsRemovable), it
// returns an empty set.
func (b *Board) MovablePositions(srcPos Pos) generics.Set[Pos] {
	if !b.HasPiece(srcPos) || !b.IsRemovable(srcPos) {
		return generics.MakeSet[Pos]()
	}
	return b.pieceMoves(srcPos)
}

// PlayerMoves returns the destinations of every piece of player that has at least one move,
// keyed by the piece position. It matches MovablePositions on each piece, but the one-hive
// check runs once for the whole board (see RemovablePositions).
func (b *Board) PlayerMoves(player PlayerID) map[Pos]generics.Set[Pos] {
	moves := make(map[Pos]generics.Set[Pos])
	for srcPos := range b.RemovablePositions() {
		if b.PieceAt(srcPos).Owner != player {
			continue
		}
		if destinations := b.pieceMoves(srcPos); len(destinations) > 0 {
			moves[srcPos] = destinations
		}
	}
	return moves
}

// pieceMoves dispatches to the move generator of the bug at srcPos, without the one-hive check.
func (b *Board) pieceMoves(srcPos Pos) generics.Set[Pos] {
	switch b.PieceAt(srcPos).Bug {
	case QUEEN:
		return b.queenMoves(srcPos)
	case SPIDER:
		return b.spiderMoves(srcPos)
	case GRASSHOPPER:
		return b.grasshopperMoves(srcPos)
	case ANT:
		return b.antMoves(srcPos)
	case BEETLE:
		return b.beetleMoves(srcPos)
	}
	return generics.MakeSet[Pos]()
}
