package rpcclient

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/protocol"
)

// Pool shares a fixed set of persistent connections between concurrent
// callers. A call waits for a free connection.
type Pool struct {
	addr    string
	timeout time.Duration
	clients chan *PersistentClient
}

func NewPool(addr string, size int, timeout time.Duration, log zerolog.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{addr: addr, timeout: timeout, clients: make(chan *PersistentClient, size)}
	for range size {
		p.clients <- NewPersistent(addr, timeout, log)
	}
	return p
}

func (p *Pool) Addr() string { return p.addr }

func (p *Pool) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	select {
	case c := <-p.clients:
		defer func() { p.clients <- c }()
		return c.Call(ctx, req)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) Ping(ctx context.Context) error {
	return New(p.addr, p.timeout).Ping(ctx)
}

// Close drops the idle connections. The pool stays usable and redials on
// the next call.
func (p *Pool) Close() error {
	idle := make([]*PersistentClient, 0, cap(p.clients))
	for len(idle) < cap(p.clients) {
		select {
		case c := <-p.clients:
			_ = c.Close()
			idle = append(idle, c)
			continue
		default:
		}
		break
	}
	for _, c := range idle {
		p.clients <- c
	}
	return nil
}
