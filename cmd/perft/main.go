// perft counts the number of action sequences of a given depth from the start of a game.
// The counts are used to validate the rules engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/janpfeifer/hexhive/internal/profilers"
	"github.com/janpfeifer/hexhive/internal/ui/terminal"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"os"
	"time"
)

var (
	flagConfig      = flag.String("config", "", "Game options, e.g. \"board_size=35,queen_to_move\".")
	flagDepth       = flag.Int("depth", 3, "Maximum depth: every depth from 1 up to this one is counted.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and count "+
		"these many subtrees simultaneously.")
	flagSpinner = flag.Bool("spinner", true, "Show a spinner while counting.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagDepth <= 0 {
		klog.Exitf("Invalid -depth=%d, it must be > 0", *flagDepth)
	}

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	terminal.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()
	if err := run(ctx); err != nil {
		klog.Exitf("%+v", err)
	}
}

// run counts every depth, with the profilers running. Profiles are written before it returns,
// also on errors.
func run(ctx context.Context) error {
	onQuit, err := profilers.Setup(ctx)
	defer onQuit()
	if err != nil {
		return errors.WithMessage(err, "failed to set up profilers")
	}

	opts, err := game.ParseOptions(*flagConfig)
	if err != nil {
		return err
	}
	g, err := game.New(opts)
	if err != nil {
		return err
	}
	for depth := 1; depth <= *flagDepth; depth++ {
		fmt.Printf("perft(%d) = ", depth)
		var spinner *terminal.Spinner
		if *flagSpinner {
			spinner = terminal.NewSpinner(ctx, os.Stdout)
		}
		start := time.Now()
		count, err := game.Perft(ctx, g, depth, *flagParallelism)
		if spinner != nil {
			spinner.Done()
		}
		if err != nil {
			fmt.Println()
			if ctx.Err() != nil {
				fmt.Printf("Interrupted: %s\n", ctx.Err())
				return nil
			}
			return errors.WithMessagef(err, "failed to count depth %d", depth)
		}
		fmt.Printf("%d (%s)\n", count, time.Since(start))
	}
	return nil
}
