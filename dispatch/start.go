package dispatch

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// StartFunc is one long-running loop (typically a closure calling
// Server.Serve or Server.ServePacket) started under Start's lifecycle.
type StartFunc func(ctx context.Context) error

// Start runs fn until it returns, ctx is canceled, or an os.Interrupt
// arrives, then gives fn stopTimeout to unwind before abandoning it.
func Start(ctx context.Context, stopTimeout time.Duration, fn StartFunc) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	fin := make(chan struct{})
	unlockOnce := func() { once.Do(func() { close(fin) }) }

	var runErr atomic.Value
	go func() {
		if err := fn(ctx); err != nil {
			runErr.Store(err)
		}
		unlockOnce()
	}()

	select {
	case <-notify:
	case <-ctx.Done():
	case <-fin:
	}
	cancel()

	go func() {
		<-time.After(stopTimeout)
		unlockOnce()
	}()
	<-fin

	if err, ok := runErr.Load().(error); ok {
		return err
	}
	return nil
}

// RunAll runs every fn concurrently, stopping all of them as soon as any
// one returns an error, and returns the first such error (or nil once every
// fn has returned).
func RunAll(ctx context.Context, fns ...StartFunc) error {
	group, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		group.Go(func() error { return fn(gctx) })
	}
	return group.Wait()
}
