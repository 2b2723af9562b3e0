package state

import (
	"fmt"
	"github.com/pkg/errors"
	"iter"
	"slices"
)

// Pos packages a (row, col) index pair into the board.
type Pos [2]int8

// Row of the position.
func (pos Pos) Row() int8 {
	return pos[0]
}

// Col of the position.
func (pos Pos) Col() int8 {
	return pos[1]
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

// ComparePos orders positions by row first and then column. It can be used with slices.SortFunc or
// generics.SortedFunc.
func ComparePos(a, b Pos) int {
	if a[0] != b[0] {
		return int(a[0]) - int(b[0])
	}
	return int(a[1]) - int(b[1])
}

// Direction is one of the six hexagonal directions, enumerated clockwise from North.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// Directions enumerates all directions, in the same order used for neighbours.
var Directions = [NumNeighbors]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}

var (
	directionNames = [NumNeighbors]string{"N", "NE", "SE", "S", "SW", "NW"}

	// directionDeltas use the doubled-row encoding: north/south skip two rows.
	directionDeltas = [NumNeighbors]Pos{{-2, 0}, {-1, 1}, {1, 1}, {2, 0}, {1, -1}, {-1, -1}}
)

func (d Direction) String() string {
	if int(d) >= NumNeighbors {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + NumNeighbors/2) % NumNeighbors
}

// Step returns the position one step away in the given direction, on a board of the given size.
// It returns ErrOutOfBounds if either resulting index falls outside [0, size).
func (pos Pos) Step(d Direction, size int) (Pos, error) {
	next, ok := pos.step(d, size)
	if !ok {
		return pos, errors.Wrapf(ErrOutOfBounds, "step %s from %s on a %dx%d board", d, pos, size, size)
	}
	return next, nil
}

// step is Step without the error allocation: ok is false when out of bounds.
func (pos Pos) step(d Direction, size int) (next Pos, ok bool) {
	if int(d) >= NumNeighbors {
		return pos, false
	}
	delta := directionDeltas[d]
	row, col := int(pos[0])+int(delta[0]), int(pos[1])+int(delta[1])
	if row < 0 || col < 0 || row >= size || col >= size {
		return pos, false
	}
	return Pos{int8(row), int8(col)}, true
}

// NeighboursIter iterates over the neighbours of pos that lie within a board of the given size,
// in the order of Directions. Missing neighbours are simply omitted.
func (pos Pos) NeighboursIter(size int) iter.Seq2[Direction, Pos] {
	return func(yield func(Direction, Pos) bool) {
		for _, d := range Directions {
			next, ok := pos.step(d, size)
			if !ok {
				continue
			}
			if !yield(d, next) {
				return
			}
		}
	}
}

// Neighbours returns the in-bounds neighbours of pos, in the order of Directions.
// It returns a newly allocated slice, with 0 to 6 entries.
func (pos Pos) Neighbours(size int) []Pos {
	neighbours := make([]Pos, 0, NumNeighbors)
	for _, next := range pos.NeighboursIter(size) {
		neighbours = append(neighbours, next)
	}
	return neighbours
}

// IsNeighbour returns whether pos2 is one step away from pos in some direction.
func (pos Pos) IsNeighbour(pos2 Pos) bool {
	delta := Pos{pos2[0] - pos[0], pos2[1] - pos[1]}
	return slices.Contains(directionDeltas[:], delta)
}
