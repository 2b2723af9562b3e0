package cli

import (
	"github.com/janpfeifer/hexhive/internal/controller"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"maps"
	"os"
	"slices"
	"strings"
)

// Command bound to a key.
type Command string

const (
	CmdPrevious Command = "previous"
	CmdNext     Command = "next"
	CmdConfirm  Command = "confirm"
	CmdBack     Command = "back"
	CmdPass     Command = "pass"
	CmdQuit     Command = "quit"

	// CmdNone in a keymap file removes a default binding.
	CmdNone Command = "none"
)

// Commands lists the valid commands, in display order.
var Commands = []Command{CmdPrevious, CmdNext, CmdConfirm, CmdBack, CmdPass, CmdQuit}

// Event returns the controller event for the command. ok is false for commands handled by
// the UI itself (pass and quit).
func (cmd Command) Event() (ev controller.Event, ok bool) {
	switch cmd {
	case CmdPrevious, CmdNext, CmdConfirm, CmdBack:
		parsed, err := controller.ParseEvent(string(cmd))
		return parsed, err == nil
	}
	return
}

// Keymap maps key names, as returned by ReadKey, to commands.
type Keymap map[string]Command

// DefaultKeymap: arrows or vi keys move the cursor, enter or space confirm, escape or
// backspace go back.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyLeft: CmdPrevious, KeyUp: CmdPrevious, "h": CmdPrevious, "k": CmdPrevious,
		KeyRight: CmdNext, KeyDown: CmdNext, "l": CmdNext, "j": CmdNext,
		KeyEnter: CmdConfirm, KeySpace: CmdConfirm,
		KeyEscape: CmdBack, KeyBackspace: CmdBack,
		"p": CmdPass,
		"q": CmdQuit, KeyCtrlC: CmdQuit, KeyCtrlD: CmdQuit,
	}
}

// Lookup the command bound to the key.
func (km Keymap) Lookup(key string) (cmd Command, found bool) {
	cmd, found = km[key]
	return
}

// KeysFor returns the sorted keys bound to the command.
func (km Keymap) KeysFor(cmd Command) []string {
	var keys []string
	for key, keyCmd := range km {
		if keyCmd == cmd {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// ParseKeymap parses a YAML mapping of key names to commands, e.g.:
//
//	a: previous
//	d: next
//	escape: none
//
// The bindings are applied over DefaultKeymap. A binding to "none" removes the key.
func ParseKeymap(data []byte) (Keymap, error) {
	var bindings map[string]string
	if err := yaml.Unmarshal(data, &bindings); err != nil {
		return nil, errors.Wrap(err, "failed to parse keymap")
	}
	km := DefaultKeymap()
	for key, value := range bindings {
		key = strings.TrimSpace(key)
		cmd := Command(strings.ToLower(strings.TrimSpace(value)))
		if cmd == CmdNone {
			delete(km, key)
			continue
		}
		if !slices.Contains(Commands, cmd) {
			return nil, errors.Errorf("keymap binds key %q to unknown command %q, valid commands are %q",
				key, value, Commands)
		}
		km[key] = cmd
	}
	return km, km.Validate()
}

// LoadKeymap reads a keymap YAML file, see ParseKeymap. An empty path returns DefaultKeymap.
func LoadKeymap(path string) (Keymap, error) {
	if path == "" {
		return DefaultKeymap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keymap file %q", path)
	}
	km, err := ParseKeymap(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "keymap file %q", path)
	}
	return km, nil
}

// Validate checks that every command, except pass, is bound to some key.
func (km Keymap) Validate() error {
	bound := slices.Collect(maps.Values(km))
	for _, cmd := range Commands {
		if cmd == CmdPass {
			continue
		}
		if !slices.Contains(bound, cmd) {
			return errors.Errorf("keymap has no key for command %q", cmd)
		}
	}
	return nil
}
