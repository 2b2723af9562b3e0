// hive is a hot-seat game in the terminal: two players take turns on the same keyboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/hexhive/internal/controller"
	"github.com/janpfeifer/hexhive/internal/game"
	"github.com/janpfeifer/hexhive/internal/ui/cli"
	"github.com/janpfeifer/hexhive/internal/ui/terminal"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
	"os"
	"time"
)

var (
	flagConfig = flag.String("config", "", "Game options, e.g. \"board_size=35,queen_to_move,queen_by=4\".")
	flagKeymap = flag.String("keymap", "", "YAML file mapping keys to commands (previous, next, confirm, back, pass, quit). "+
		"Bindings are applied over the default keymap.")
	flagColor = flag.Bool("color", true, "Use colors in the terminal.")
	flagClear = flag.Bool("clear", true, "Clear the screen before printing the board.")
	flagRaw   = flag.Bool("raw", true, "Read single key presses. If false (or stdin is not a terminal), "+
		"keys are read a line at a time: type the keys then enter, and an empty line confirms.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		exceptions.Panicf("unexpected arguments %q, all options are given as flags", flag.Args())
	}

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	terminal.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	opts := must.M1(game.ParseOptions(*flagConfig))
	keymap := must.M1(cli.LoadKeymap(*flagKeymap))
	g := must.M1(game.New(opts))
	klog.V(1).Infof("Starting game %s with options %s", g.ID, opts)

	ui := cli.New(os.Stdout, *flagColor, *flagClear, keymap)
	if *flagRaw {
		restore, err := terminal.RawMode()
		if err != nil {
			klog.Warningf("Keys will be read line by line: %v", err)
		} else {
			ui.SetRaw(true)
			defer restore()
		}
	}
	defer terminal.Reset(os.Stdout)

	g, err := ui.Run(ctx, controller.New(g), os.Stdin)
	if err != nil && ctx.Err() == nil {
		klog.Errorf("Game %s failed: %+v", g.ID, err)
	}
	fmt.Printf("Game %s ended after %d moves.\n", g.ID, len(g.History))
}
