package signalhandler

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerCount(t *testing.T) {
	assert.GreaterOrEqual(t, GetOptimalProcs(), 1)
	assert.Equal(t, GetOptimalProcs(), WorkerCount(0))
	assert.Equal(t, GetOptimalProcs(), WorkerCount(-2))
	assert.Equal(t, 3, WorkerCount(3))
}

func TestSetupHandlerCancelsOnSignal(t *testing.T) {
	ctx, stop := SetupHandler(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled")
	}
}
