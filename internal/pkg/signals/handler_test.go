package signals

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_CanceledOnSignal(t *testing.T) {
	ctx, stop := Context(context.Background())
	defer stop()

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("context was not canceled after signal")
	}
}

func TestContext_FollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := Context(parent)
	defer stop()

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not follow parent cancellation")
	}
}

func TestContext_StopCancels(t *testing.T) {
	ctx, stop := Context(context.Background())
	stop()

	assert.Error(t, ctx.Err())
	// A second stop must not block or panic.
	assert.NotPanics(t, stop)
}
