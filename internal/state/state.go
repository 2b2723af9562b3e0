// Package state holds the rules engine of the game: pieces, board, hex adjacency,
// the one-hive connectivity check, and the placement and movement generators.
//
// The board is a fixed N×N array in "doubled row" coordinates: a cell (row, col) has
// neighbours (row±2, col) to the north/south, and (row±1, col±1) diagonally. Only
// cells with the same (row+col) parity as the center are ever reachable.
package state

import (
	"fmt"
)

// Bug is the kind of insect of a piece. NoBug is the null value of an empty cell.
type Bug uint8

const (
	NoBug Bug = iota
	GRASSHOPPER
	SPIDER
	ANT
	QUEEN
	BEETLE
	LastBug
)

const (
	// NumPlayers currently limited to 2.
	NumPlayers = 2

	// NumNeighbors of each position: the board is hexagonal.
	NumNeighbors = 6

	// NumBugs doesn't include NoBug.
	NumBugs = LastBug - 1
)

var (
	BugLetters  = [LastBug]string{"-", "G", "S", "A", "Q", "B"}
	LetterToBug = map[string]Bug{"G": GRASSHOPPER, "S": SPIDER, "A": ANT, "Q": QUEEN, "B": BEETLE}
	BugNames    = [LastBug]string{"None", "Grasshopper", "Spider", "Ant", "Queen", "Beetle"}

	// Bugs enumerates all the bug kinds, skipping NoBug.
	Bugs = [NumBugs]Bug{GRASSHOPPER, SPIDER, ANT, QUEEN, BEETLE}
)

// String returns the long bug name.
func (b Bug) String() string {
	if b >= LastBug {
		return fmt.Sprintf("Bug(%d)", uint8(b))
	}
	return BugNames[b]
}

// Letter returns the one letter abbreviation of the bug.
func (b Bug) Letter() string {
	if b >= LastBug {
		return "?"
	}
	return BugLetters[b]
}

// PlayerID identifies the owner of a piece. PlayerNone marks an empty cell.
type PlayerID uint8

const (
	PlayerNone PlayerID = iota
	PlayerOne
	PlayerTwo
)

func (p PlayerID) String() string {
	switch p {
	case PlayerNone:
		return "None"
	case PlayerOne:
		return "One"
	case PlayerTwo:
		return "Two"
	}
	return fmt.Sprintf("PlayerID(%d)", uint8(p))
}

// Opponent returns the other player. The opponent of PlayerNone is PlayerNone.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return PlayerNone
}

// Index returns 0 for PlayerOne and 1 for PlayerTwo, convenient to index per-player arrays.
// It must not be called for PlayerNone.
func (p PlayerID) Index() int {
	return int(p) - 1
}

// Piece is the content of a board cell. The zero value, NoPiece, is an empty cell.
type Piece struct {
	Bug   Bug
	Owner PlayerID
}

// NoPiece represents an empty cell.
var NoPiece = Piece{}

// IsEmpty returns whether the piece represents "no piece".
func (p Piece) IsEmpty() bool {
	return p.Owner == PlayerNone
}

// Valid checks the pairing invariant: either both owner and bug are set, or none is.
func (p Piece) Valid() bool {
	if p.Bug >= LastBug || p.Owner > PlayerTwo {
		return false
	}
	return (p.Owner == PlayerNone) == (p.Bug == NoBug)
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s's %s", p.Owner, p.Bug)
}

// InitialReserve is the ordered list of bugs each player starts with, off the board.
var InitialReserve = []Bug{
	GRASSHOPPER, GRASSHOPPER, GRASSHOPPER,
	SPIDER, SPIDER,
	ANT, ANT, ANT,
	QUEEN,
	BEETLE, BEETLE,
}

// TotalPiecesPerPlayer is the length of InitialReserve.
const TotalPiecesPerPlayer = 11
