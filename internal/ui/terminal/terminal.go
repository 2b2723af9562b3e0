// Package terminal handles the terminal around an interactive or long-running program:
// interrupts, raw mode for single key input, resetting colors and the cursor, and a
// spinner to show while something is being computed.
package terminal

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt.
// If the program hasn't exited after gracePeriod, it resets the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset the terminal: make the cursor visible and restore the default colors.
func Reset(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h\033[39;49;0m\n")
}

// Width of the terminal connected to stdout, or defaultWidth if it is not a terminal.
func Width(defaultWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// RawMode puts stdin in raw mode, so keys are read one at a time without echo. Call the
// returned restore function to return the terminal to its previous state.
//
// It returns an error if stdin is not a terminal.
func RawMode() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set terminal to raw mode")
	}
	return func() {
		if err := term.Restore(fd, oldState); err != nil {
			klog.Errorf("Failed to restore terminal: %+v", err)
		}
	}, nil
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeDots  = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

	// Theme used by new spinners.
	Theme = ThemeAscii
)

// Spinner shows a spinning symbol while the program is computing something.
type Spinner struct {
	wg     sync.WaitGroup
	cancel func()
}

// NewSpinner starts a spinner writing to w on a separate goroutine.
// It stops when Spinner.Done is called, or the context is cancelled.
func NewSpinner(ctx context.Context, w io.Writer) *Spinner {
	s := &Spinner{}
	ctx, s.cancel = context.WithCancel(ctx)
	theme := Theme
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		_, _ = fmt.Fprint(w, "\033[?25l") // Hide cursor.
		defer fmt.Fprint(w, "\033[?25h")  // Restore cursor.

		_, _ = fmt.Fprint(w, " ")
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(w, "\b%c", theme[idx])
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(w, "\b \b")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and waits for it to clean up.
func (s *Spinner) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
