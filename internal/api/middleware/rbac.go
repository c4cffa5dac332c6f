package middleware

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// RequireRole rejects requests to apis whose envelope role is not one of
// allowedRoles.
func RequireRole(allowedRoles []string, apis ...protocol.API) Middleware {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	gated := apiSet(apis)

	return func(next protocol.Handler) protocol.Handler {
		return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) *protocol.Response {
			if _, ok := gated[req.API]; ok {
				if _, ok := allowed[req.Role]; !ok {
					return protocol.Errorf(req.RequestID, protocol.CodeBadRequest, "role must be buyer or seller")
				}
			}
			return next.Handle(ctx, req)
		})
	}
}
