package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Version is the envelope version stamped on every message.
const Version = 1

// Error codes carried in Response.Error.Code.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeSessionExpired = "SESSION_EXPIRED"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL"
)

// Request is the envelope sent by a client.
type Request struct {
	V         int             `json:"v"`
	RequestID string          `json:"request_id"`
	Service   string          `json:"service"`
	API       API             `json:"api"`
	Role      string          `json:"role,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Response is the envelope written back for every request. Exactly one of
// Error and Data is populated.
type Response struct {
	V         int             `json:"v"`
	RequestID string          `json:"request_id"`
	OK        bool            `json:"ok"`
	Error     *Error          `json:"error"`
	Data      json.RawMessage `json:"data"`
}

// Error is the structured failure carried by a response. It satisfies the
// error interface so frontends can hand an upstream failure back unchanged.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewOK builds a success response. data is encoded as JSON; a nil value
// becomes an empty object so that Data is never null on success.
func NewOK(requestID string, data any) (*Response, error) {
	raw := json.RawMessage(`{}`)
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode response data: %w", err)
		}
		raw = b
	}
	return &Response{V: Version, RequestID: requestID, OK: true, Data: raw}, nil
}

// NewError builds a failure response.
func NewError(requestID string, e *Error) *Response {
	return &Response{V: Version, RequestID: requestID, OK: false, Error: e}
}

// Errorf is shorthand for a failure response with a formatted message.
func Errorf(requestID, code, format string, args ...any) *Response {
	return NewError(requestID, &Error{Code: code, Message: fmt.Sprintf(format, args...)})
}

// DecodePayload unmarshals the request payload into v. An absent or null
// payload leaves v untouched.
func (r *Request) DecodePayload(v any) error {
	if len(r.Payload) == 0 || bytes.Equal(bytes.TrimSpace(r.Payload), []byte("null")) {
		return nil
	}
	return json.Unmarshal(r.Payload, v)
}

// DecodeData unmarshals a success response body into v.
func (r *Response) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// Handler serves one decoded request and always produces a response.
type Handler interface {
	Handle(ctx context.Context, req *Request) *Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *Request) *Response

func (f HandlerFunc) Handle(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the caller's correlation token so
// outbound calls made while serving a request reuse it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation token stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
