package rpcclient_test

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-system/internal/api"
	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/service"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/file"
	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcclient"
	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcserver"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

func serve(t *testing.T, h protocol.Handler) string {
	t.Helper()
	s := rpcserver.New("127.0.0.1:0", h, zerolog.Nop())
	require.NoError(t, s.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s.Addr().String()
}

func TestCustomerClient_AgainstStore(t *testing.T) {
	ctx := context.Background()
	store, err := service.NewCustomerStore(ctx, file.NewSnapshotStore(filepath.Join(t.TempDir(), "customer.json")), 0, zerolog.Nop())
	require.NoError(t, err)
	addr := serve(t, api.NewCustomerHandler(store, zerolog.Nop()))

	for name, caller := range map[string]rpcclient.Caller{
		"transient":  rpcclient.New(addr, time.Second),
		"persistent": rpcclient.NewPersistent(addr, time.Second, zerolog.Nop()),
	} {
		t.Run(name, func(t *testing.T) {
			cc := rpcclient.NewCustomerClient(caller)
			username := "seller-" + name

			created, err := cc.CreateAccount(ctx, ports.CreateAccountInput{Role: domain.RoleSeller, SellerName: "S", Username: username, Password: "pw"})
			require.NoError(t, err)
			require.NotZero(t, created.SellerID)

			login, err := cc.Login(ctx, ports.LoginInput{Role: domain.RoleSeller, Username: username, Password: "pw"})
			require.NoError(t, err)
			require.Equal(t, created.SellerID, login.SellerID)

			info, err := cc.ValidateAndTouchSession(ctx, ports.ValidateSessionInput{SessionID: login.SessionID})
			require.NoError(t, err)
			require.Equal(t, domain.RoleSeller, info.UserType)
			require.Equal(t, created.SellerID, info.UserID)

			_, err = cc.Login(ctx, ports.LoginInput{Role: domain.RoleSeller, Username: username, Password: "nope"})
			var pe *protocol.Error
			require.ErrorAs(t, err, &pe)
			require.Equal(t, protocol.CodeBadRequest, pe.Code)

			_, err = cc.ValidateAndTouchSession(ctx, ports.ValidateSessionInput{SessionID: "sess_unknown"})
			require.ErrorAs(t, err, &pe)
			require.Equal(t, protocol.CodeUnauthorized, pe.Code)
			require.Equal(t, "Invalid session.", pe.Message)
		})
	}
}

func TestClient_PropagatesRequestID(t *testing.T) {
	seen := make(chan string, 2)
	addr := serve(t, protocol.HandlerFunc(func(_ context.Context, req *protocol.Request) *protocol.Response {
		seen <- req.RequestID
		resp, _ := protocol.NewOK(req.RequestID, nil)
		return resp
	}))
	c := rpcclient.New(addr, time.Second)

	_, err := c.Call(protocol.WithRequestID(context.Background(), "caller-7"), &protocol.Request{API: protocol.APIGetItem})
	require.NoError(t, err)
	require.Equal(t, "caller-7", <-seen)

	_, err = c.Call(context.Background(), &protocol.Request{API: protocol.APIGetItem})
	require.NoError(t, err)
	require.Len(t, <-seen, 36, "a uuid is generated when the caller has none")
}

func TestPersistentClient_RetriesOnceAfterDroppedConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	var accepted atomic.Int32
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			n := accepted.Add(1)
			go func(conn net.Conn, n int32) {
				defer conn.Close()
				for {
					var req protocol.Request
					if err := protocol.ReadFrame(conn, &req); err != nil {
						return
					}
					if n == 1 {
						return // drop the first connection mid-call
					}
					resp, _ := protocol.NewOK(req.RequestID, map[string]int{"conn": int(n)})
					if err := protocol.WriteFrame(conn, resp); err != nil {
						return
					}
				}
			}(conn, n)
		}
	}()

	c := rpcclient.NewPersistent(ln.Addr().String(), time.Second, zerolog.Nop())
	t.Cleanup(func() { _ = c.Close() })

	resp, err := c.Call(context.Background(), &protocol.Request{API: protocol.APIGetItem})
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.JSONEq(t, `{"conn":2}`, string(resp.Data))

	_, err = c.Call(context.Background(), &protocol.Request{API: protocol.APIGetItem})
	require.NoError(t, err)
	require.EqualValues(t, 2, accepted.Load(), "the healthy connection is reused")
}

func TestPersistentClient_DoesNotRetryApplicationErrors(t *testing.T) {
	var calls atomic.Int32
	addr := serve(t, protocol.HandlerFunc(func(_ context.Context, req *protocol.Request) *protocol.Response {
		calls.Add(1)
		return protocol.Errorf(req.RequestID, protocol.CodeBadRequest, "item not found")
	}))
	pc := rpcclient.NewProductClient(rpcclient.NewPersistent(addr, time.Second, zerolog.Nop()))

	_, err := pc.GetItem(context.Background(), ports.GetItemInput{ItemID: &domain.ItemKey{Category: 1, ID: 9}})
	var pe *protocol.Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "item not found", pe.Message)
	require.EqualValues(t, 1, calls.Load())
}

func TestPersistentClient_GivesUpAfterSecondFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := rpcclient.NewPersistent(addr, 200*time.Millisecond, zerolog.Nop())
	_, err = c.Call(context.Background(), &protocol.Request{API: protocol.APIGetItem})
	require.Error(t, err)
	require.Error(t, c.Ping(context.Background()))
	require.Error(t, rpcclient.New(addr, 200*time.Millisecond).Ping(context.Background()))
}

func TestClient_MismatchedResponse(t *testing.T) {
	addr := serve(t, protocol.HandlerFunc(func(_ context.Context, _ *protocol.Request) *protocol.Response {
		resp, _ := protocol.NewOK("someone-else", nil)
		return resp
	}))

	_, err := rpcclient.New(addr, time.Second).Call(context.Background(), &protocol.Request{RequestID: "mine", API: protocol.APIGetItem})
	require.True(t, errors.Is(err, rpcclient.ErrMismatchedResponse))
}

func TestPool_ConcurrentCallers(t *testing.T) {
	var inFlight, peak atomic.Int32
	addr := serve(t, protocol.HandlerFunc(func(_ context.Context, req *protocol.Request) *protocol.Response {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		resp, _ := protocol.NewOK(req.RequestID, nil)
		return resp
	}))
	pool := rpcclient.NewPool(addr, 2, time.Second, zerolog.Nop())
	t.Cleanup(func() { _ = pool.Close() })

	errs := make(chan error, 6)
	for range 6 {
		go func() {
			_, err := pool.Call(context.Background(), &protocol.Request{API: protocol.APIGetItem})
			errs <- err
		}()
	}
	for range 6 {
		require.NoError(t, <-errs)
	}
	require.LessOrEqual(t, peak.Load(), int32(2))
	require.NoError(t, pool.Ping(context.Background()))
}
