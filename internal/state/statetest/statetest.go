// Package statetest provides helper functions to create tests using the board state.
package statetest

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/hexhive/internal/generics"
	. "github.com/janpfeifer/hexhive/internal/state"
	"strings"
	"unicode"
)

// PieceOnBoard represents a position and ownership of a piece in the board.
type PieceOnBoard struct {
	Pos    Pos
	Player PlayerID
	Bug    Bug
}

// EmptyBoard creates an empty board of DefaultBoardSize, or panics.
func EmptyBoard() *Board {
	b, err := NewBoard(DefaultBoardSize)
	if err != nil {
		exceptions.Panicf("failed to create board: %+v", err)
	}
	return b
}

// BuildBoard from a collection of pieces, on a board of DefaultBoardSize.
func BuildBoard(layout []PieceOnBoard) *Board {
	b := EmptyBoard()
	for _, p := range layout {
		if err := b.Place(p.Pos, Piece{Bug: p.Bug, Owner: p.Player}); err != nil {
			exceptions.Panicf("failed to build board with %+v: %+v", p, err)
		}
	}
	return b
}

// TextOrigin is the board position of the first character of the first line of a board
// given as text to FromText. Its row+col parity matches the center of the board.
var TextOrigin = Pos{10, 10}

// TextPos converts a (line, column) coordinate of a FromText board to a board position.
func TextPos(line, column int) Pos {
	return Pos{TextOrigin[0] + int8(line), TextOrigin[1] + int8(column)}
}

// FromText builds a board of DefaultBoardSize from a text drawing, where each line is a row
// and each character a column of the board, starting at TextOrigin. A leading empty line is
// skipped, so raw string literals can start on the next line.
//
//   - '.' or ' ' is an empty cell.
//   - A bug letter (G, S, A, Q, B) is a piece: upper case for PlayerOne, lower case for PlayerTwo.
//   - '*' is an empty cell whose position is returned in marks: tests use it to mark expected results.
//
// Non-empty cells must have an even line+column, since only those are hex cells reachable from the center.
func FromText(txt string) (b *Board, marks generics.Set[Pos]) {
	lines := strings.Split(txt, "\n")
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	b = EmptyBoard()
	marks = generics.MakeSet[Pos]()
	for line, row := range lines {
		for column, code := range []rune(row) {
			if code == '.' || code == ' ' {
				continue
			}
			if (line+column)%2 == 1 {
				exceptions.Panicf("board text at line %d, column %d should be empty, got %q:\n%s", line, column, code, txt)
			}
			pos := TextPos(line, column)
			if code == '*' {
				marks.Insert(pos)
				continue
			}
			bug, found := LetterToBug[string(unicode.ToUpper(code))]
			if !found {
				exceptions.Panicf("board text at line %d, column %d has unknown code %q:\n%s", line, column, code, txt)
			}
			player := PlayerOne
			if unicode.IsLower(code) {
				player = PlayerTwo
			}
			if err := b.Place(pos, Piece{Bug: bug, Owner: player}); err != nil {
				exceptions.Panicf("failed to place %q at %s: %+v", code, pos, err)
			}
		}
	}
	return
}

// Sorted returns the positions in the set sorted by row and column, or nil if empty.
func Sorted(s generics.Set[Pos]) []Pos {
	return generics.SortedFunc(s, ComparePos)
}
