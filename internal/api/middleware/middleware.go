// Package middleware holds the protocol.Handler wrappers shared by every
// service: panic recovery, request logging, metrics and the session and role
// gates.
package middleware

import (
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Middleware wraps a handler.
type Middleware func(next protocol.Handler) protocol.Handler

// Chain applies mws to h so that mws[0] runs first.
func Chain(h protocol.Handler, mws ...Middleware) protocol.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func apiSet(apis []protocol.API) map[protocol.API]struct{} {
	set := make(map[protocol.API]struct{}, len(apis))
	for _, a := range apis {
		set[a] = struct{}{}
	}
	return set
}
