package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/endorses/kmpcat/internal/pkg/logger"
)

// Context returns a child of parent that is canceled when the process
// receives SIGINT, SIGTERM or SIGHUP. The returned stop function releases
// the signal handler and must be called once the context is no longer needed.
func Context(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig := <-sigCh:
			logger.Info("Received signal, canceling work", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
		<-done
	}
}
