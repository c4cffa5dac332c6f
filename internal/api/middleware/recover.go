package middleware

import (
	"context"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Recover turns a handler panic into an INTERNAL response so the connection
// stays usable.
func Recover(log zerolog.Logger) Middleware {
	return func(next protocol.Handler) protocol.Handler {
		return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) (resp *protocol.Response) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("api", string(req.API)).
						Str("request_id", req.RequestID).
						Bytes("stack", debug.Stack()).
						Msg("handler panic")
					resp = protocol.Errorf(req.RequestID, protocol.CodeInternal, "Internal error: panic: %v", r)
				}
			}()
			return next.Handle(ctx, req)
		})
	}
}
