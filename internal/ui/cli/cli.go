// Package cli implements a terminal UI for hot-seat games: it renders the board and the
// reserves, and turns key presses into controller events.
package cli

import (
	"context"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/hexhive/internal/controller"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/janpfeifer/hexhive/internal/generics"
	. "github.com/janpfeifer/hexhive/internal/state"
	"github.com/janpfeifer/hexhive/internal/ui/terminal"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"slices"
	"strings"
)

const (
	// CellWidth is the number of characters used by each board column.
	CellWidth = 3

	// defaultWidth is used when the output is not a terminal.
	defaultWidth = 80
)

// UI renders a game driven by a controller.
type UI struct {
	out                io.Writer
	color, clearScreen bool
	keymap             Keymap
	styles             styles

	// raw is set when the terminal is in raw mode, and lines need a carriage return.
	raw bool

	// message is shown below the board once, e.g.: the error of the last command.
	message string
}

type styles struct {
	player            [NumPlayers]lipgloss.Style
	queen             [NumPlayers]lipgloss.Style
	cursor, candidate lipgloss.Style
	title, message    lipgloss.Style
}

func newStyles() (s styles) {
	s.player[PlayerOne.Index()] = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("0")).Bold(true)
	s.player[PlayerTwo.Index()] = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Bold(true)
	for ii := range s.player {
		s.queen[ii] = s.player[ii].Foreground(lipgloss.Color("15"))
	}
	s.cursor = lipgloss.NewStyle().Reverse(true).Bold(true)
	s.candidate = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	s.title = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true).Bold(true)
	s.message = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	return
}

// New creates a UI writing to out. If color is false no ANSI sequences are used. If
// clearScreen is true the screen is cleared before each board is printed.
func New(out io.Writer, color, clearScreen bool, keymap Keymap) *UI {
	return &UI{
		out:         out,
		color:       color,
		clearScreen: clearScreen,
		keymap:      keymap,
		styles:      newStyles(),
	}
}

// SetRaw informs the UI the terminal is in raw mode.
func (ui *UI) SetRaw(raw bool) {
	ui.raw = raw
}

// Outcome applies the end of game policy: a player whose Queen is surrounded loses, and if
// both Queens are surrounded at once it is a draw. It returns a message if the game is over.
func Outcome(g *game.Game) (over bool, msg string) {
	surrounded := [NumPlayers]bool{g.QueenSurrounded(PlayerOne), g.QueenSurrounded(PlayerTwo)}
	switch {
	case surrounded[0] && surrounded[1]:
		return true, "*** DRAW: both Queens are surrounded! ***"
	case surrounded[0]:
		return true, fmt.Sprintf("*** %s PLAYER WINS!! Congratulations! ***", strings.ToUpper(PlayerTwo.String()))
	case surrounded[1]:
		return true, fmt.Sprintf("*** %s PLAYER WINS!! Congratulations! ***", strings.ToUpper(PlayerOne.String()))
	}
	return false, ""
}

// Run the interactive loop, reading keys from in (one at a time if SetRaw was called, else
// line by line, see KeyReader), until the game is over, the user quits,
// the input ends or ctx is cancelled. It returns the last state of the game.
//
// Players without any legal source pass automatically.
func (ui *UI) Run(ctx context.Context, c *controller.Controller, in io.Reader) (*game.Game, error) {
	keys := NewKeyReader(in, ui.raw)
	for {
		if err := ctx.Err(); err != nil {
			return c.Game(), err
		}
		g := c.Game()
		if over, msg := Outcome(g); over {
			ui.message = msg
			ui.Print(c)
			return g, nil
		}
		if len(c.Sources()) == 0 {
			if n := len(g.History); n > 0 && g.History[n-1].IsPass() {
				ui.message = "*** DRAW: no player can act! ***"
				ui.Print(c)
				return g, nil
			}
			klog.V(1).Infof("game %s: %s has no legal action, passing", g.ID, g.Current)
			if err := c.Pass(); err != nil {
				return g, err
			}
			ui.message = fmt.Sprintf("%s had no legal action and passed.", g.Current)
			continue
		}

		ui.Print(c)
		key, err := keys.Next()
		if err == io.EOF {
			return g, nil
		}
		if err != nil {
			return g, errors.Wrap(err, "failed to read key")
		}
		ui.message = ""
		cmd, found := ui.keymap.Lookup(key)
		if !found {
			ui.message = fmt.Sprintf("Key %q is not mapped, press %s to quit.", key, strings.Join(ui.keymap.KeysFor(CmdQuit), "/"))
			continue
		}
		switch cmd {
		case CmdQuit:
			return g, nil
		case CmdPass:
			err = c.Pass()
		default:
			ev, _ := cmd.Event()
			err = c.Handle(ev)
		}
		if err != nil {
			klog.V(1).Infof("game %s: %s: %v", g.ID, cmd, err)
			ui.message = err.Error()
		}
	}
}

// Print the game and the selection state, centered in the terminal.
func (ui *UI) Print(c *controller.Controller) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	ui.printCentered(ui.Render(c))
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(line))
	}
	indent := max((terminal.Width(defaultWidth)-blockWidth)/2, 0)
	eol := "\n"
	if ui.raw {
		eol = "\r\n"
	}
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprint(ui.out, eol)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s%s", strings.Repeat(" ", indent), line, eol)
	}
}

// style renders s with the style, if colors are enabled.
func (ui *UI) style(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// Render returns the game and the selection state as a text block.
func (ui *UI) Render(c *controller.Controller) string {
	var sb strings.Builder
	g := c.Game()
	sb.WriteString(ui.style(ui.styles.title, fmt.Sprintf("Move #%d", g.MoveNumber)))
	sb.WriteString("\n\n")
	ui.renderBoard(&sb, c)
	sb.WriteString("\n")
	for _, id := range []PlayerID{PlayerOne, PlayerTwo} {
		ui.renderReserve(&sb, c, id)
	}
	sb.WriteString("\n")
	sb.WriteString(ui.status(c))
	sb.WriteString("\n")
	sb.WriteString(ui.help())
	if ui.message != "" {
		sb.WriteString("\n\n")
		sb.WriteString(ui.style(ui.styles.message, ui.message))
	}
	return sb.String()
}

// highlights returns the highlighted board positions and the candidate destinations.
func highlights(c *controller.Controller) (cursor generics.Set[Pos], candidates generics.Set[Pos]) {
	cursor = generics.MakeSet[Pos]()
	candidates = generics.MakeSet[Pos]()
	if c.Stage() == controller.SelectSource {
		if s, ok := c.Source(); ok && !s.InReserve {
			cursor.Insert(s.Pos)
		}
		if preview, err := c.Preview(); err == nil {
			candidates = preview
		}
		return
	}
	candidates.Insert(c.Destinations()...)
	if dst, ok := c.Destination(); ok {
		cursor.Insert(dst)
	}
	return
}

// renderBoard draws the used part of the board, with a margin. Each line is one board row,
// and only the cells with the parity of the center are drawn.
func (ui *UI) renderBoard(sb *strings.Builder, c *controller.Controller) {
	board := c.Game().Board
	cursor, candidates := highlights(c)

	center := board.Center()
	minRow, maxRow, minCol, maxCol, ok := board.UsedLimits()
	if !ok {
		minRow, maxRow, minCol, maxCol = center.Row(), center.Row(), center.Col(), center.Col()
	}
	for pos := range candidates {
		minRow, maxRow = min(minRow, pos.Row()), max(maxRow, pos.Row())
		minCol, maxCol = min(minCol, pos.Col()), max(maxCol, pos.Col())
	}
	last := int8(board.Size() - 1)
	minRow, maxRow = max(minRow-2, 0), min(maxRow+2, last)
	minCol, maxCol = max(minCol-2, 0), min(maxCol+2, last)
	parity := (int(center.Row()) + int(center.Col())) % 2

	for row := minRow; row <= maxRow; row++ {
		var line strings.Builder
		for col := minCol; col <= maxCol; col++ {
			if (int(row)+int(col))%2 != parity {
				line.WriteString(strings.Repeat(" ", CellWidth))
				continue
			}
			line.WriteString(ui.renderCell(board, Pos{row, col}, cursor.Has(Pos{row, col}), candidates.Has(Pos{row, col})))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
}

func (ui *UI) renderCell(board *Board, pos Pos, isCursor, isCandidate bool) string {
	piece := board.PieceAt(pos)
	var content string
	switch {
	case !piece.IsEmpty():
		content = string(PieceRune(piece))
	case isCandidate:
		content = "*"
	default:
		content = "."
	}
	if isCursor {
		return ui.style(ui.styles.cursor, "["+content+"]")
	}
	if !piece.IsEmpty() {
		style := ui.styles.player[piece.Owner.Index()]
		if piece.Bug == QUEEN {
			style = ui.styles.queen[piece.Owner.Index()]
		}
		return ui.style(style, " "+content+" ")
	}
	if isCandidate {
		return " " + ui.style(ui.styles.candidate, content) + " "
	}
	return " " + content + " "
}

// renderReserve lists the pieces off-board of the player, highlighting the selected one.
func (ui *UI) renderReserve(sb *strings.Builder, c *controller.Controller, id PlayerID) {
	selected := -1
	if s, ok := c.Source(); ok && s.InReserve && s.Player == id {
		selected = s.Index
	}
	fmt.Fprintf(sb, "%s:", ui.style(ui.styles.player[id.Index()], fmt.Sprintf(" %s ", id)))
	reserve := c.Game().Player(id).Reserve
	if len(reserve) == 0 {
		sb.WriteString(" (empty)")
	}
	for index, bug := range reserve {
		letter := string(PieceRune(Piece{Bug: bug, Owner: id}))
		if index == selected {
			sb.WriteString(ui.style(ui.styles.cursor, "["+letter+"]"))
		} else {
			sb.WriteString(" " + letter + " ")
		}
	}
	sb.WriteString("\n")
}

// status describes what the current player is expected to do.
func (ui *UI) status(c *controller.Controller) string {
	g := c.Game()
	player := g.Current
	s, ok := c.Source()
	if !ok {
		return fmt.Sprintf("%s has no legal action.", player)
	}
	piece := g.Piece(s)
	from := "from the reserve"
	if !s.InReserve {
		from = "at " + s.Pos.String()
	}
	switch c.Stage() {
	case controller.SelectSource:
		return fmt.Sprintf("%s to play: select a piece (%d of %d: %s %s)",
			player, slices.Index(c.Sources(), s)+1, len(c.Sources()), piece.Bug, from)
	case controller.SelectDestination:
		dst, _ := c.Destination()
		return fmt.Sprintf("%s: where to put the %s %s? (%d of %d: %s)",
			player, piece.Bug, from, slices.Index(c.Destinations(), dst)+1, len(c.Destinations()), dst)
	case controller.ConfirmDestination:
		dst, _ := c.Destination()
		return fmt.Sprintf("%s: confirm the %s %s to %s?", player, piece.Bug, from, dst)
	}
	return ""
}

// help lists the keys of each command.
func (ui *UI) help() string {
	parts := make([]string, 0, len(Commands))
	for _, cmd := range Commands {
		keys := ui.keymap.KeysFor(cmd)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", cmd, strings.Join(keys, "/")))
	}
	return strings.Join(parts, " | ")
}
