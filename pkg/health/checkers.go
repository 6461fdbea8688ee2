package health

import (
	"context"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck flags goroutine leaks: it fails once the process runs
// more than threshold goroutines.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("too many goroutines: %d > %d", n, threshold)
		}
		return nil
	}
}

// GCMaxPauseCheck fails when any recorded stop-the-world GC pause exceeded
// threshold, which usually points at an oversized heap.
func GCMaxPauseCheck(threshold time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats debug.GCStats
		debug.ReadGCStats(&stats)

		for _, pause := range stats.Pause {
			if pause > threshold {
				return errors.Errorf("long GC pause: %s > %s", pause, threshold)
			}
		}
		return nil
	}
}
