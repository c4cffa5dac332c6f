package middleware

import (
	"context"
	"time"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Metrics records request counts and latency per API. Unknown API names are
// folded into one label value to keep cardinality bounded.
func Metrics(service string, served []protocol.API) Middleware {
	known := apiSet(served)
	return func(next protocol.Handler) protocol.Handler {
		return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) *protocol.Response {
			start := time.Now()
			resp := next.Handle(ctx, req)

			api := string(req.API)
			if _, ok := known[req.API]; !ok {
				api = "unknown"
			}
			metrics.RequestDuration.WithLabelValues(service, api).Observe(time.Since(start).Seconds())
			metrics.RequestsTotal.WithLabelValues(service, api, resultCode(resp)).Inc()
			return resp
		})
	}
}
