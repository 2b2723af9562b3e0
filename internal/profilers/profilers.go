// Package profilers sets up profiling for the binaries: an HTTP pprof server, and CPU and
// heap profiles written to files.
//
// If linked, it installs the profiler flags.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagPort       = flag.Int("pprof_port", -1, "If >= 0, serves the pprof HTTP profiler on localhost at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write heap profile to `file` on exit.")
)

// Setup starts the profilers configured by the flags. It must be called after flag.Parse.
// The returned function stops them and writes the profiles: call it (deferred) before
// the program exits.
func Setup(ctx context.Context) (onQuit func(), err error) {
	var stops []func()
	onQuit = func() {
		for ii := len(stops) - 1; ii >= 0; ii-- {
			stops[ii]()
		}
	}
	if *flagPort >= 0 {
		startHTTPProfiler(ctx, *flagPort)
	}
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return onQuit, errors.Wrapf(err, "could not create CPU profile %q", *flagCPUProfile)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return onQuit, errors.Wrap(err, "could not start CPU profile")
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			_ = f.Close()
			klog.V(1).Infof("CPU profile written to %q", *flagCPUProfile)
		})
	}
	if *flagMemProfile != "" {
		stops = append(stops, func() {
			if err := writeHeapProfile(*flagMemProfile); err != nil {
				klog.Errorf("Failed to write heap profile: %+v", err)
			}
		})
	}
	return onQuit, nil
}

// writeHeapProfile after a garbage collection, so it reflects live memory.
func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create heap profile %q", path)
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "could not write heap profile")
}

// startHTTPProfiler serves the default mux (where net/http/pprof registers itself) until
// the context is done.
func startHTTPProfiler(ctx context.Context, port int) {
	server := &http.Server{Addr: fmt.Sprintf("localhost:%d", port)}
	fmt.Printf("Starting profiler on http://%s/debug/pprof\n", server.Addr)
	fmt.Printf("- You can access it with: $ go tool pprof http://%s/debug/pprof/heap\n", server.Addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("Profiler server failed: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()
}
