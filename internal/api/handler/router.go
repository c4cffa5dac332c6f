// Package handler maps API names to service calls. Each service builds one
// Router, registers its operations with Handle and serves requests through
// Dispatch.
package handler

import (
	"context"
	"fmt"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Envelope is the part of a request that travels outside the payload.
type Envelope struct {
	RequestID string
	Role      string
	SessionID string
}

// BadRequestError reports a payload that could not be decoded or failed
// validation, or an API the service does not serve.
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string { return e.Msg }

func badRequest(format string, args ...any) *BadRequestError {
	return &BadRequestError{Msg: fmt.Sprintf(format, args...)}
}

type route func(ctx context.Context, req *protocol.Request) (any, error)

// Router is a closed API-name dispatch table.
type Router struct {
	routes    map[protocol.API]route
	validator *payloadValidator
}

func NewRouter() *Router {
	return &Router{
		routes:    make(map[protocol.API]route),
		validator: newPayloadValidator(),
	}
}

// Handle registers fn under api. The payload is decoded into a fresh In and
// validated before fn runs.
func Handle[In any](r *Router, api protocol.API, fn func(ctx context.Context, env Envelope, in In) (any, error)) {
	r.routes[api] = func(ctx context.Context, req *protocol.Request) (any, error) {
		var in In
		if err := req.DecodePayload(&in); err != nil {
			return nil, badRequest("invalid payload: %v", err)
		}
		if err := r.validator.Validate(&in); err != nil {
			return nil, badRequest("%v", err)
		}
		env := Envelope{RequestID: req.RequestID, Role: req.Role, SessionID: req.SessionID}
		return fn(ctx, env, in)
	}
}

// Dispatch runs the route registered for req.API.
func (r *Router) Dispatch(ctx context.Context, req *protocol.Request) (any, error) {
	rt, ok := r.routes[req.API]
	if !ok {
		return nil, badRequest("Unknown API: %s", req.API)
	}
	return rt(ctx, req)
}

// Missing returns the members of want that have no route.
func (r *Router) Missing(want []protocol.API) []protocol.API {
	var out []protocol.API
	for _, api := range want {
		if _, ok := r.routes[api]; !ok {
			out = append(out, api)
		}
	}
	return out
}

// Len is the number of registered routes.
func (r *Router) Len() int { return len(r.routes) }
