package game

import (
	"fmt"
	"github.com/janpfeifer/hexhive/internal/parameters"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
)

// Options of a game, parsed from a configuration string with ParseOptions.
type Options struct {
	// BoardSize is the N of the NxN board.
	BoardSize int

	// QueenToMove forbids a player to move pieces on the board until their Queen is placed.
	QueenToMove bool

	// QueenBy, if > 0, forces the Queen to be among the first QueenBy pieces a player places.
	QueenBy int
}

// DefaultOptions has all the optional rules turned off.
func DefaultOptions() Options {
	return Options{BoardSize: state.DefaultBoardSize}
}

// ParseOptions parses a configuration string like "board_size=21,queen_to_move,queen_by=4".
// Unknown keys are reported as errors.
func ParseOptions(config string) (opts Options, err error) {
	opts = DefaultOptions()
	params, err := parameters.NewFromConfigString(config)
	if err != nil {
		return
	}
	opts.BoardSize, err = parameters.PopParamOr(params, "board_size", opts.BoardSize)
	if err != nil {
		return
	}
	opts.QueenToMove, err = parameters.PopParamOr(params, "queen_to_move", opts.QueenToMove)
	if err != nil {
		return
	}
	opts.QueenBy, err = parameters.PopParamOr(params, "queen_by", opts.QueenBy)
	if err != nil {
		return
	}
	if err = params.CheckEmpty(); err != nil {
		return
	}
	err = opts.Validate()
	return
}

// Validate checks that the options are within range.
func (opts Options) Validate() error {
	if opts.BoardSize < state.MinBoardSize || opts.BoardSize > state.MaxBoardSize {
		return errors.Errorf("board_size=%d out of range, it must be between %d and %d",
			opts.BoardSize, state.MinBoardSize, state.MaxBoardSize)
	}
	if opts.QueenBy < 0 || opts.QueenBy > state.TotalPiecesPerPlayer {
		return errors.Errorf("queen_by=%d out of range, it must be between 0 (off) and %d",
			opts.QueenBy, state.TotalPiecesPerPlayer)
	}
	return nil
}

// String returns the options in the configuration format accepted by ParseOptions.
func (opts Options) String() string {
	s := fmt.Sprintf("board_size=%d", opts.BoardSize)
	if opts.QueenToMove {
		s += ",queen_to_move"
	}
	if opts.QueenBy > 0 {
		s += fmt.Sprintf(",queen_by=%d", opts.QueenBy)
	}
	return s
}
