// Package controller implements the turn and selection state machine that drives a game
// from discrete input events.
//
// A turn goes through three stages: SelectSource, SelectDestination and ConfirmDestination.
// Previous and Next move the cursor within the current stage (wrapping around), Confirm
// advances to the next stage, and Back returns to the previous one. Confirming in
// ConfirmDestination applies the action, hands the turn to the opponent and restarts at
// SelectSource.
//
// Sources are game.Game.LegalSources: board pieces that can be lifted but have no move
// (e.g. Beetles), and reserve pieces when there is nowhere to place them, are not listed.
// So a confirmed source always has a destination, and when there are no sources at all the
// player can only Pass.
package controller

import (
	"fmt"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/janpfeifer/hexhive/internal/generics"
	"github.com/janpfeifer/hexhive/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strings"
)

// Stage of the turn.
type Stage uint8

const (
	SelectSource Stage = iota
	SelectDestination
	ConfirmDestination
)

func (s Stage) String() string {
	switch s {
	case SelectSource:
		return "SelectSource"
	case SelectDestination:
		return "SelectDestination"
	case ConfirmDestination:
		return "ConfirmDestination"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Event is a discrete input consumed by the controller.
type Event uint8

const (
	Previous Event = iota
	Next
	Confirm
	Back
	LastEvent
)

var eventNames = [LastEvent]string{"previous", "next", "confirm", "back"}

func (e Event) String() string {
	if e >= LastEvent {
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
	return eventNames[e]
}

// ParseEvent converts an event name (as returned by Event.String, case-insensitive) to an Event.
func ParseEvent(name string) (Event, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for ii, eventName := range eventNames {
		if name == eventName {
			return Event(ii), nil
		}
	}
	return LastEvent, errors.Errorf("unknown event %q, valid events are %q", name, eventNames)
}

// Controller holds a game and the selection state of the current turn.
type Controller struct {
	game  *game.Game
	stage Stage

	sources   []game.Selection
	sourceIdx int

	// destinations of the committed source, only valid after SelectSource.
	destinations []state.Pos
	destIdx      int
}

// New creates a controller for the game, at the SelectSource stage of the current player.
func New(g *game.Game) *Controller {
	c := &Controller{game: g}
	c.reset()
	return c
}

// reset clears the selection and recomputes the sources of the current player.
func (c *Controller) reset() {
	c.stage = SelectSource
	c.sources = c.game.LegalSources()
	c.sourceIdx = 0
	c.destinations = nil
	c.destIdx = 0
}

// Game returns the current game.
func (c *Controller) Game() *game.Game { return c.game }

// Stage returns the current stage of the turn.
func (c *Controller) Stage() Stage { return c.stage }

// Sources returns the legal sources of the current player. Empty if the player can only pass.
func (c *Controller) Sources() []game.Selection { return c.sources }

// Source returns the highlighted source (in SelectSource) or the committed one (in the later
// stages). ok is false if there are no sources.
func (c *Controller) Source() (s game.Selection, ok bool) {
	if len(c.sources) == 0 {
		return
	}
	return c.sources[c.sourceIdx], true
}

// Destinations returns the sorted destinations of the committed source. It is empty during
// SelectSource: use Preview for the highlighted source.
func (c *Controller) Destinations() []state.Pos { return c.destinations }

// Destination returns the highlighted destination. ok is false during SelectSource.
func (c *Controller) Destination() (pos state.Pos, ok bool) {
	if c.stage == SelectSource || len(c.destinations) == 0 {
		return
	}
	return c.destinations[c.destIdx], true
}

// Preview returns the destinations of the highlighted source, computed fresh from the game,
// without changing the stage.
func (c *Controller) Preview() (generics.Set[state.Pos], error) {
	s, ok := c.Source()
	if !ok {
		return nil, errors.Wrapf(state.ErrEmptySelectionSet, "%s has no legal sources", c.game.Current)
	}
	return c.game.LegalDestinations(s)
}

// Handle processes one event. It returns an error wrapping state.ErrEmptySelectionSet if
// there is nothing to select (see Pass), or wrapping state.ErrIllegalMove if the action
// could not be applied. In either case the controller state is left unchanged.
func (c *Controller) Handle(ev Event) error {
	if ev >= LastEvent {
		return errors.Errorf("invalid event %s", ev)
	}
	klog.V(3).Infof("controller: %s at stage %s", ev, c.stage)
	switch c.stage {
	case SelectSource:
		return c.handleSelectSource(ev)
	case SelectDestination:
		return c.handleSelectDestination(ev)
	case ConfirmDestination:
		return c.handleConfirmDestination(ev)
	}
	return errors.Errorf("invalid controller stage %s", c.stage)
}

func (c *Controller) handleSelectSource(ev Event) error {
	if len(c.sources) == 0 {
		return errors.Wrapf(state.ErrEmptySelectionSet, "%s has no legal sources, it can only pass", c.game.Current)
	}
	switch ev {
	case Previous, Next:
		c.sourceIdx = cycle(c.sourceIdx, len(c.sources), ev)
	case Confirm:
		destinations, err := c.game.LegalDestinations(c.sources[c.sourceIdx])
		if err != nil {
			return err
		}
		if len(destinations) == 0 {
			return errors.Wrapf(state.ErrEmptySelectionSet, "no destinations for %s", c.sources[c.sourceIdx])
		}
		c.destinations = generics.SortedFunc(destinations, state.ComparePos)
		c.destIdx = 0
		c.stage = SelectDestination
	case Back:
		// Nothing to go back to.
	}
	return nil
}

func (c *Controller) handleSelectDestination(ev Event) error {
	switch ev {
	case Previous, Next:
		c.destIdx = cycle(c.destIdx, len(c.destinations), ev)
	case Confirm:
		c.stage = ConfirmDestination
	case Back:
		c.stage = SelectSource
		c.destinations = nil
		c.destIdx = 0
	}
	return nil
}

func (c *Controller) handleConfirmDestination(ev Event) error {
	switch ev {
	case Confirm:
		newGame, err := c.game.Act(c.sources[c.sourceIdx], c.destinations[c.destIdx])
		if err != nil {
			return err
		}
		c.game = newGame
		c.reset()
	case Back:
		c.stage = SelectDestination
	case Previous, Next:
		// The destination is locked until Back.
	}
	return nil
}

// Pass hands the turn to the opponent. It is only allowed when the current player has no
// legal sources, otherwise it returns an error wrapping state.ErrIllegalMove.
func (c *Controller) Pass() error {
	newGame, err := c.game.Pass()
	if err != nil {
		return err
	}
	c.game = newGame
	c.reset()
	return nil
}

// cycle moves idx one step backwards or forward, wrapping around n.
func cycle(idx, n int, ev Event) int {
	if ev == Previous {
		return (idx + n - 1) % n
	}
	return (idx + 1) % n
}
