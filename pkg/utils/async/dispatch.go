package async

import (
	"context"

	"github.com/kwikkconnect/kwikkconnect/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It detaches from the caller's deadline but preserves the logger, and
// recovers panics so a failing handler never takes down the process.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}

// Go is like Dispatch but keeps the caller's context, so cancelling the
// parent (e.g. disposing a chat room) aborts the handler.
func Go(ctx context.Context, handler func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(ctx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(ctx); err != nil {
			logging.From(ctx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
