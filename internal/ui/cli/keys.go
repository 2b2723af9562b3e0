package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Key names returned by ReadKey for non-printable keys. Printable ASCII keys are returned
// as themselves, e.g. "q".
const (
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyEnter     = "enter"
	KeySpace     = "space"
	KeyTab       = "tab"
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyCtrlC     = "ctrl_c"
	KeyCtrlD     = "ctrl_d"
	KeyUnknown   = "unknown"
)

// ReadKey reads one key press from a terminal in raw mode, and returns its name. See
// KeyReader for input that arrives line by line.
//
// An escape byte followed by '[' or 'O' starts an ANSI sequence (arrows, home, end).
// An escape byte with nothing else buffered is the Escape key itself.
// Unrecognized sequences are consumed whole and returned as KeyUnknown.
func ReadKey(r *bufio.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b {
	case 0x1b:
		return readEscape(r), nil
	case '\r', '\n':
		return KeyEnter, nil
	case ' ':
		return KeySpace, nil
	case '\t':
		return KeyTab, nil
	case 0x7f, 0x08:
		return KeyBackspace, nil
	case 0x03:
		return KeyCtrlC, nil
	case 0x04:
		return KeyCtrlD, nil
	}
	if b > 0x20 && b < 0x7f {
		return string(rune(b)), nil
	}
	return fmt.Sprintf("0x%02x", b), nil
}

// readEscape decodes what follows an escape byte.
func readEscape(r *bufio.Reader) string {
	if r.Buffered() == 0 {
		return KeyEscape
	}
	next, err := r.ReadByte()
	if err != nil {
		return KeyEscape
	}
	if next != '[' && next != 'O' {
		_ = r.UnreadByte()
		return KeyEscape
	}
	final, err := r.ReadByte()
	if err != nil {
		return KeyEscape
	}
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	// Parameters and intermediate bytes, up to the final byte in 0x40-0x7e.
	for final < 0x40 || final > 0x7e {
		final, err = r.ReadByte()
		if err != nil {
			break
		}
	}
	return KeyUnknown
}

// KeyReader returns the names of the keys pressed.
//
// In raw mode each key is read as it is pressed. Otherwise the terminal only delivers whole
// lines: the keys typed in a line are returned in order, and the newline ending a non-empty
// line is dropped, so that "l<enter>" is a single key. An empty line is KeyEnter.
type KeyReader struct {
	r       *bufio.Reader
	raw     bool
	pending []string
}

// NewKeyReader reads keys from in, see KeyReader for the raw and line modes.
func NewKeyReader(in io.Reader, raw bool) *KeyReader {
	return &KeyReader{r: bufio.NewReader(in), raw: raw}
}

// Next returns the next key. It returns io.EOF when the input ends.
func (kr *KeyReader) Next() (string, error) {
	if kr.raw {
		return ReadKey(kr.r)
	}
	for len(kr.pending) == 0 {
		line, err := kr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		kr.pending = lineKeys(line)
	}
	key := kr.pending[0]
	kr.pending = kr.pending[1:]
	return key, nil
}

// lineKeys decodes the keys of one line of input.
func lineKeys(line string) (keys []string) {
	if trimmed, found := strings.CutSuffix(line, "\n"); found {
		line = strings.TrimSuffix(trimmed, "\r")
		if line == "" {
			return []string{KeyEnter}
		}
	}
	r := bufio.NewReader(strings.NewReader(line))
	for {
		key, err := ReadKey(r)
		if err != nil {
			return
		}
		keys = append(keys, key)
	}
}
