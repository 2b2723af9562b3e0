package game

import (
	"context"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"sync/atomic"
)

// Perft counts the number of distinct action sequences of the given depth starting from g,
// as listed by Game.Actions (a pass counts as an action). It is used to validate the rules
// against known counts.
//
// The subtrees of the first action are counted in parallel, with at most parallelism
// goroutines. If parallelism <= 0, runtime.GOMAXPROCS(0) is used.
//
// It returns early with ctx.Err() if the context is cancelled.
func Perft(ctx context.Context, g *Game, depth, parallelism int) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	var count atomic.Int64
	var wg errgroup.Group
	wg.SetLimit(parallelism)
	for _, action := range g.Actions() {
		wg.Go(func() error {
			next, err := g.Apply(action)
			if err != nil {
				return errors.WithMessagef(err, "perft failed to apply listed action %s", action)
			}
			subCount, err := perft(ctx, next, depth-1)
			if err != nil {
				return err
			}
			count.Add(subCount)
			klog.V(2).Infof("perft: %s -> %d", action, subCount)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return 0, err
	}
	return count.Load(), nil
}

// perft is the sequential version of Perft.
func perft(ctx context.Context, g *Game, depth int) (int64, error) {
	if depth == 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	actions := g.Actions()
	if depth == 1 {
		return int64(len(actions)), nil
	}
	var count int64
	for _, action := range actions {
		next, err := g.Apply(action)
		if err != nil {
			return 0, errors.WithMessagef(err, "perft failed to apply listed action %s", action)
		}
		subCount, err := perft(ctx, next, depth-1)
		if err != nil {
			return 0, err
		}
		count += subCount
	}
	return count, nil
}
