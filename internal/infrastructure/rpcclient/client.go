// Package rpcclient sends requests to a marketplace service and adapts the
// remote stores to the ports interfaces the frontends depend on.
package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

const defaultTimeout = 5 * time.Second

// Caller performs one request/response exchange. A non-nil error means the
// transport failed; application failures come back in the response.
type Caller interface {
	Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error)
}

// ErrMismatchedResponse is returned when a response does not answer the
// request that was sent.
var ErrMismatchedResponse = errors.New("response request_id does not match")

// Client opens a new connection for every call.
type Client struct {
	addr    string
	timeout time.Duration
}

func New(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{addr: addr, timeout: timeout}
}

func (c *Client) Addr() string { return c.addr }

func (c *Client) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	prepare(ctx, req)

	conn, err := dial(ctx, c.addr, c.timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return exchange(ctx, conn, c.timeout, req)
}

// Ping checks that the service accepts connections.
func (c *Client) Ping(ctx context.Context) error {
	conn, err := dial(ctx, c.addr, c.timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}

// PersistentClient reuses one connection. Calls are serialised. A call that
// fails at the transport level is retried once on a fresh connection;
// application errors are never retried.
type PersistentClient struct {
	addr    string
	timeout time.Duration
	log     zerolog.Logger

	mu   sync.Mutex
	conn net.Conn
}

func NewPersistent(addr string, timeout time.Duration, log zerolog.Logger) *PersistentClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PersistentClient{addr: addr, timeout: timeout, log: log}
}

func (c *PersistentClient) Addr() string { return c.addr }

func (c *PersistentClient) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	prepare(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			if ctx.Err() != nil {
				break
			}
			metrics.ClientRetriesTotal.WithLabelValues(c.addr).Inc()
			c.log.Debug().Err(lastErr).Str("addr", c.addr).Str("api", string(req.API)).Msg("retrying on new connection")
		}
		if c.conn == nil {
			conn, err := dial(ctx, c.addr, c.timeout)
			if err != nil {
				lastErr = err
				continue
			}
			c.conn = conn
		}

		resp, err := exchange(ctx, c.conn, c.timeout, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.closeLocked()
	}
	return nil, lastErr
}

// Ping checks the cached connection's target is reachable with a fresh dial.
func (c *PersistentClient) Ping(ctx context.Context) error {
	conn, err := dial(ctx, c.addr, c.timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close drops the cached connection. The client stays usable.
func (c *PersistentClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *PersistentClient) closeLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// prepare stamps the envelope version and a request id, reusing the one
// carried by ctx so a frontend's upstream calls share its caller's id.
func prepare(ctx context.Context, req *protocol.Request) {
	req.V = protocol.Version
	if req.RequestID != "" {
		return
	}
	if id := protocol.RequestIDFrom(ctx); id != "" {
		req.RequestID = id
		return
	}
	req.RequestID = uuid.NewString()
}

func dial(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: dial %s: %w", addr, err)
	}
	return conn, nil
}

func exchange(ctx context.Context, conn net.Conn, timeout time.Duration, req *protocol.Request) (*protocol.Response, error) {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("rpcclient: set deadline: %w", err)
	}

	if err := protocol.WriteFrame(conn, req); err != nil {
		return nil, fmt.Errorf("rpcclient: %s: %w", req.API, err)
	}
	var resp protocol.Response
	if err := protocol.ReadFrame(conn, &resp); err != nil {
		return nil, fmt.Errorf("rpcclient: %s: %w", req.API, err)
	}
	if resp.RequestID != req.RequestID {
		return nil, fmt.Errorf("rpcclient: %s: %w", req.API, ErrMismatchedResponse)
	}
	return &resp, nil
}
