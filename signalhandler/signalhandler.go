package signalhandler

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"
)

// SetupHandler returns a context that is cancelled on SIGINT or SIGTERM
func SetupHandler(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// GetOptimalProcs returns the optimal number of probe workers for the system
func GetOptimalProcs() int {
	numCPU := runtime.NumCPU()

	// probing is mostly file IO plus the occasional exiftool or OpenCV call
	maxProcs := (numCPU * 3) / 4
	if maxProcs < 1 {
		maxProcs = 1
	}

	return maxProcs
}

// WorkerCount returns configured when positive, GetOptimalProcs otherwise
func WorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return GetOptimalProcs()
}
