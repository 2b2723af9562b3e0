package state

import (
	"fmt"
	"github.com/pkg/errors"
	"iter"
	"strings"
	"unicode"
)

const (
	// DefaultBoardSize is large enough that pieces never reach the boundary in normal play.
	DefaultBoardSize = 35

	// MinBoardSize leaves room for the center and all its neighbours away from the boundary.
	MinBoardSize = 11

	// MaxBoardSize is limited by the int8 coordinates of Pos.
	MaxBoardSize = 127

	// BoundaryMargin is the number of rows/columns at each edge of the board that are never
	// offered as placement or movement destinations. This keeps every neighbour lookup of an
	// eligible position in bounds.
	BoundaryMargin = 2
)

// Board owns the N×N grid of cells. It is a pure storage abstraction: it enforces the
// owner/bug pairing of pieces, but not the rules of the game.
type Board struct {
	size      int
	cells     []Piece // Row-major.
	numPieces int
}

// NewBoard creates an empty board of size×size cells.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, errors.Errorf("board size %d is not in the valid range [%d, %d]", size, MinBoardSize, MaxBoardSize)
	}
	return &Board{
		size:  size,
		cells: make([]Piece, size*size),
	}, nil
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.cells = make([]Piece, len(b.cells))
	copy(newB.cells, b.cells)
	return newB
}

// Size of the board: it has Size()×Size() cells.
func (b *Board) Size() int {
	return b.size
}

// Center is the only position where the first piece of a game can be placed.
func (b *Board) Center() Pos {
	return Pos{int8(b.size / 2), int8(b.size / 2)}
}

// InBounds returns whether both indices of pos lie in [0, Size()).
func (b *Board) InBounds(pos Pos) bool {
	return pos[0] >= 0 && pos[1] >= 0 && int(pos[0]) < b.size && int(pos[1]) < b.size
}

// Eligible returns whether pos is far enough from the edges of the board to be a placement
// or movement destination. See BoundaryMargin.
func (b *Board) Eligible(pos Pos) bool {
	limit := int8(b.size - BoundaryMargin)
	return pos[0] >= BoundaryMargin && pos[1] >= BoundaryMargin && pos[0] < limit && pos[1] < limit
}

func (b *Board) index(pos Pos) int {
	return int(pos[0])*b.size + int(pos[1])
}

// PieceAt returns the piece at the given position, or NoPiece if it is empty or out of bounds.
func (b *Board) PieceAt(pos Pos) Piece {
	if !b.InBounds(pos) {
		return NoPiece
	}
	return b.cells[b.index(pos)]
}

// HasPiece returns whether there is a piece on the given location of the board.
func (b *Board) HasPiece(pos Pos) bool {
	return !b.PieceAt(pos).IsEmpty()
}

// NumPiecesOnBoard is the number of currently occupied cells.
func (b *Board) NumPiecesOnBoard() int {
	return b.numPieces
}

// Set writes piece (possibly NoPiece) at pos. It is the only mutator of the board:
// higher layers must use it in pairs (clear source, write destination), see Move.
func (b *Board) Set(pos Pos, piece Piece) error {
	if !b.InBounds(pos) {
		return errors.Wrapf(ErrOutOfBounds, "setting %s", pos)
	}
	if !piece.Valid() {
		return errors.Wrapf(ErrInvalidPiece, "setting %+v at %s", piece, pos)
	}
	idx := b.index(pos)
	if !b.cells[idx].IsEmpty() {
		b.numPieces--
	}
	if !piece.IsEmpty() {
		b.numPieces++
	}
	b.cells[idx] = piece
	return nil
}

// Place writes a new piece into an empty cell.
func (b *Board) Place(pos Pos, piece Piece) error {
	if piece.IsEmpty() {
		return errors.Wrapf(ErrInvalidPiece, "cannot place an empty piece at %s", pos)
	}
	if b.HasPiece(pos) {
		return errors.Wrapf(ErrInvalidPiece, "cannot place %s at %s, occupied by %s", piece, pos, b.PieceAt(pos))
	}
	return b.Set(pos, piece)
}

// Move lifts the piece at src and writes it at the empty dst. Either both cells change or none does.
func (b *Board) Move(src, dst Pos) error {
	piece := b.PieceAt(src)
	if piece.IsEmpty() {
		return errors.Wrapf(ErrInvalidPiece, "no piece to move at %s", src)
	}
	if !b.InBounds(dst) {
		return errors.Wrapf(ErrOutOfBounds, "moving %s from %s to %s", piece, src, dst)
	}
	if b.HasPiece(dst) {
		return errors.Wrapf(ErrInvalidPiece, "cannot move %s to %s, occupied by %s", piece, dst, b.PieceAt(dst))
	}
	b.cells[b.index(src)] = NoPiece
	b.cells[b.index(dst)] = piece
	return nil
}

// OccupiedPositionsIter iterates over all occupied positions, in row-major order.
func (b *Board) OccupiedPositionsIter() iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		if b.numPieces == 0 {
			return
		}
		for idx, piece := range b.cells {
			if piece.IsEmpty() {
				continue
			}
			if !yield(Pos{int8(idx / b.size), int8(idx % b.size)}) {
				return
			}
		}
	}
}

// OccupiedPositions returns all the occupied positions, in row-major order.
func (b *Board) OccupiedPositions() []Pos {
	positions := make([]Pos, 0, b.numPieces)
	for pos := range b.OccupiedPositionsIter() {
		positions = append(positions, pos)
	}
	return positions
}

// Neighbours returns the in-bounds neighbour positions of pos, ordered as Directions.
func (b *Board) Neighbours(pos Pos) []Pos {
	return pos.Neighbours(b.size)
}

// NeighbourPieces returns the pieces (possibly NoPiece) in the in-bounds neighbours of pos,
// ordered as Directions. Out-of-bounds neighbours are omitted.
func (b *Board) NeighbourPieces(pos Pos) []Piece {
	pieces := make([]Piece, 0, NumNeighbors)
	for _, next := range pos.NeighboursIter(b.size) {
		pieces = append(pieces, b.PieceAt(next))
	}
	return pieces
}

// OccupiedNeighbours returns the slice of neighbouring positions holding a piece.
func (b *Board) OccupiedNeighbours(pos Pos) []Pos {
	positions := make([]Pos, 0, NumNeighbors)
	for _, next := range pos.NeighboursIter(b.size) {
		if b.HasPiece(next) {
			positions = append(positions, next)
		}
	}
	return positions
}

// CountOccupiedNeighbours returns how many neighbours of pos hold a piece, not counting
// the position ignore (pass pos itself to not ignore anything).
func (b *Board) CountOccupiedNeighbours(pos, ignore Pos) (count int) {
	for _, next := range pos.NeighboursIter(b.size) {
		if next != ignore && b.HasPiece(next) {
			count++
		}
	}
	return
}

// PlayerNeighbours returns the neighbouring positions holding pieces of the given player.
func (b *Board) PlayerNeighbours(player PlayerID, pos Pos) []Pos {
	positions := make([]Pos, 0, NumNeighbors)
	for _, next := range pos.NeighboursIter(b.size) {
		if piece := b.PieceAt(next); !piece.IsEmpty() && piece.Owner == player {
			positions = append(positions, next)
		}
	}
	return positions
}

// FindPieces returns the positions holding the given piece, in row-major order.
func (b *Board) FindPieces(piece Piece) (positions []Pos) {
	for pos := range b.OccupiedPositionsIter() {
		if b.PieceAt(pos) == piece {
			positions = append(positions, pos)
		}
	}
	return
}

// UsedLimits returns the min/max row and column of the occupied cells.
// ok is false if the board is empty.
func (b *Board) UsedLimits() (minRow, maxRow, minCol, maxCol int8, ok bool) {
	for pos := range b.OccupiedPositionsIter() {
		if !ok || pos[0] < minRow {
			minRow = pos[0]
		}
		if !ok || pos[0] > maxRow {
			maxRow = pos[0]
		}
		if !ok || pos[1] < minCol {
			minCol = pos[1]
		}
		if !ok || pos[1] > maxCol {
			maxCol = pos[1]
		}
		ok = true
	}
	return
}

// PieceRune is the one character representation of a piece used by Board.String:
// upper case for PlayerOne, lower case for PlayerTwo and '.' for an empty cell.
func PieceRune(piece Piece) rune {
	if piece.IsEmpty() {
		return '.'
	}
	r := rune(piece.Bug.Letter()[0])
	if piece.Owner == PlayerTwo {
		r = unicode.ToLower(r)
	}
	return r
}

// String returns a text dump of the used area of the board, with a margin. Cells that can't
// be reached (the wrong row+col parity) are printed as spaces.
func (b *Board) String() string {
	minRow, maxRow, minCol, maxCol, ok := b.UsedLimits()
	if !ok {
		return fmt.Sprintf("empty %dx%d board", b.size, b.size)
	}
	minRow, maxRow = max(minRow-2, 0), min(maxRow+2, int8(b.size-1))
	minCol, maxCol = max(minCol-1, 0), min(maxCol+1, int8(b.size-1))
	center := b.Center()
	parity := (center[0] + center[1]) & 1

	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "rows %d..%d, cols %d..%d:\n", minRow, maxRow, minCol, maxCol)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if (row+col)&1 != parity {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(PieceRune(b.PieceAt(Pos{row, col})))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
