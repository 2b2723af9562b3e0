package state

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a position or a step in some direction falls outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrIllegalMove is returned when a destination is not among the legal ones for the selected source.
	ErrIllegalMove = errors.New("illegal move")

	// ErrEmptySelectionSet is returned when there is nothing to select: no legal sources or destinations.
	ErrEmptySelectionSet = errors.New("empty selection set")

	// ErrInvalidPiece is returned when a piece breaks the owner/bug pairing, or when a piece
	// is written or lifted where it can't be.
	ErrInvalidPiece = errors.New("invalid piece")
)
