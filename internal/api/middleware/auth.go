package middleware

import (
	"context"
	"encoding/json"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Session requires a session token on the protected APIs. A token found in
// the payload is copied into the envelope so handlers read a single place.
func Session(protected ...protocol.API) Middleware {
	gated := apiSet(protected)
	return func(next protocol.Handler) protocol.Handler {
		return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) *protocol.Response {
			if _, ok := gated[req.API]; !ok {
				return next.Handle(ctx, req)
			}
			if req.SessionID == "" {
				req.SessionID = payloadSession(req.Payload)
			}
			if req.SessionID == "" {
				return protocol.Errorf(req.RequestID, protocol.CodeBadRequest, "session_id required")
			}
			return next.Handle(ctx, req)
		})
	}
}

func payloadSession(raw json.RawMessage) string {
	var p struct {
		SessionID string `json:"session_id"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &p) != nil {
		return ""
	}
	return p.SessionID
}
