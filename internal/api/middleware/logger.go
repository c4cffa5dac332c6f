package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Logger writes one line per request. Client errors go out at debug,
// INTERNAL at error. The service name is expected on log already.
func Logger(log zerolog.Logger) Middleware {
	return func(next protocol.Handler) protocol.Handler {
		return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) *protocol.Response {
			start := time.Now()
			resp := next.Handle(ctx, req)

			ev := log.Debug()
			code := resultCode(resp)
			if code == protocol.CodeInternal {
				ev = log.Error()
			}
			ev.Str("api", string(req.API)).
				Str("request_id", req.RequestID).
				Bool("ok", resp.OK).
				Str("code", code).
				Dur("latency", time.Since(start)).
				Msg("request")
			return resp
		})
	}
}

func resultCode(resp *protocol.Response) string {
	if resp.OK || resp.Error == nil {
		return "OK"
	}
	return resp.Error.Code
}
