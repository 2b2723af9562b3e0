package game

import (
	"fmt"
	"github.com/janpfeifer/hexhive/internal/generics"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"slices"
)

// Action describes a placement or a move. If Move is false it is a placement of a new
// piece from the reserve, and Source is ignored.
//
// An action with Bug == state.NoBug is a pass.
type Action struct {
	Player         state.PlayerID
	Bug            state.Bug
	Move           bool
	Source, Target state.Pos
}

// PassAction returns the pass action for the given player.
func PassAction(player state.PlayerID) Action {
	return Action{Player: player}
}

// IsPass returns whether the action is a pass.
func (a Action) IsPass() bool {
	return a.Bug == state.NoBug
}

func (a Action) String() string {
	if a.IsPass() {
		return fmt.Sprintf("%s passes", a.Player)
	}
	if a.Move {
		return fmt.Sprintf("%s moves %s: %s->%s", a.Player, a.Bug.Letter(), a.Source, a.Target)
	}
	return fmt.Sprintf("%s places %s in %s", a.Player, a.Bug.Letter(), a.Target)
}

// Act applies the selected source to the destination, for the current player, and returns
// the new game. The receiver is not changed.
//
// It returns an error wrapping state.ErrIllegalMove if the destination is not among the
// LegalDestinations of the selection.
func (g *Game) Act(s Selection, dst state.Pos) (*Game, error) {
	destinations, err := g.LegalDestinations(s)
	if err != nil {
		return nil, err
	}
	piece := g.Piece(s)
	if !destinations.Has(dst) {
		return nil, errors.Wrapf(state.ErrIllegalMove, "%s can't go from %s to %s", piece, s, dst)
	}

	newG := g.Clone()
	action := Action{Player: g.Current, Bug: piece.Bug, Move: !s.InReserve, Source: s.Pos, Target: dst}
	if s.InReserve {
		action.Source = state.Pos{}
		if err := newG.Board.Place(dst, piece); err != nil {
			return nil, errors.WithMessagef(err, "failed to apply %s", action)
		}
		p := newG.Player(g.Current)
		p.Reserve = slices.Delete(p.Reserve, s.Index, s.Index+1)
	} else {
		if err := newG.Board.Move(s.Pos, dst); err != nil {
			return nil, errors.WithMessagef(err, "failed to apply %s", action)
		}
	}
	newG.endTurn(action)
	return newG, nil
}

// Pass returns the game with the turn handed to the opponent. It is only allowed if the
// current player has no LegalSources, otherwise it returns an error wrapping
// state.ErrIllegalMove.
func (g *Game) Pass() (*Game, error) {
	if sources := g.LegalSources(); len(sources) > 0 {
		return nil, errors.Wrapf(state.ErrIllegalMove, "%s can't pass with %d pieces able to act",
			g.Current, len(sources))
	}
	newG := g.Clone()
	newG.endTurn(PassAction(g.Current))
	return newG, nil
}

// endTurn records the action and hands the turn to the opponent.
func (g *Game) endTurn(action Action) {
	klog.V(1).Infof("game %s: #%d %s", g.ID, g.MoveNumber, action)
	g.History = append(g.History, action)
	g.MoveNumber++
	g.Current = g.Current.Opponent()
	if klog.V(2).Enabled() {
		klog.Infof("game %s: board after move #%d:\n%s", g.ID, g.MoveNumber-1, g.Board)
	}
}

// Apply takes an action as listed by Actions. It returns an error wrapping
// state.ErrIllegalMove if the action is not legal.
func (g *Game) Apply(a Action) (*Game, error) {
	if a.Player != g.Current {
		return nil, errors.Wrapf(state.ErrIllegalMove, "%s: it's %s's turn", a, g.Current)
	}
	if a.IsPass() {
		return g.Pass()
	}
	if a.Move {
		if g.Board.PieceAt(a.Source).Bug != a.Bug {
			return nil, errors.Wrapf(state.ErrIllegalMove, "%s: no %s at %s", a, a.Bug, a.Source)
		}
		return g.Act(BoardSelection(a.Source), a.Target)
	}
	index := slices.Index(g.Player(g.Current).Reserve, a.Bug)
	if index < 0 {
		return nil, errors.Wrapf(state.ErrIllegalMove, "%s: no %s in reserve", a, a.Bug)
	}
	return g.Act(ReserveSelection(g.Current, index), a.Target)
}

// Actions lists all distinct actions available to the current player: placements of each
// bug kind in the reserve (regardless of how many copies there are), then the moves of the
// pieces on the board. If there are none, it returns only the pass action.
func (g *Game) Actions() []Action {
	var actions []Action
	current := g.Current
	sources, moves := g.legalSources()
	seen := generics.MakeSet[state.Bug]()
	for _, s := range sources {
		if !s.InReserve {
			bug := g.Board.PieceAt(s.Pos).Bug
			for _, dst := range generics.SortedFunc(moves[s.Pos], state.ComparePos) {
				actions = append(actions, Action{Player: current, Bug: bug, Move: true, Source: s.Pos, Target: dst})
			}
			continue
		}
		piece := g.Piece(s)
		if seen.Has(piece.Bug) {
			continue
		}
		seen.Insert(piece.Bug)
		destinations, err := g.LegalDestinations(s)
		if err != nil {
			// Sources are always valid selections.
			klog.Errorf("game %s: invalid source %s: %+v", g.ID, s, err)
			continue
		}
		for _, dst := range generics.SortedFunc(destinations, state.ComparePos) {
			actions = append(actions, Action{Player: current, Bug: piece.Bug, Target: dst})
		}
	}
	if len(actions) == 0 {
		actions = append(actions, PassAction(current))
	}
	return actions
}
