// Package app assembles the four marketplace processes from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/marketplace-system/internal/api"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/service"
	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/file"
	mongodb "github.com/99minutos/marketplace-system/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/marketplace-system/internal/infrastructure/db/redis"
	opshttp "github.com/99minutos/marketplace-system/internal/infrastructure/http"
	"github.com/99minutos/marketplace-system/internal/infrastructure/http/handlers"
	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcclient"
	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcserver"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

const shutdownTimeout = 5 * time.Second

// Service is one runnable marketplace process: an RPC listener plus an
// optional ops HTTP listener.
type Service struct {
	Name string

	rpc     *rpcserver.Server
	ops     *echo.Echo
	opsAddr string
	closers []func(context.Context) error
	log     zerolog.Logger
}

// Listen binds the RPC socket so Addr is known before Run.
func (s *Service) Listen() error { return s.rpc.Listen() }

// Addr is the bound RPC address, or nil before Listen.
func (s *Service) Addr() net.Addr { return s.rpc.Addr() }

// Run serves until ctx is cancelled or a listener fails, then releases the
// service's backend connections.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.rpc.Serve(gctx)
	})
	if s.ops != nil {
		g.Go(func() error {
			s.log.Info().Str("addr", s.opsAddr).Msg("ops server listening")
			if err := s.ops.Start(s.opsAddr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				return fmt.Errorf("ops server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			return s.ops.Shutdown(sctx)
		})
	}

	err := g.Wait()
	s.close()
	return err
}

func (s *Service) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			s.log.Warn().Err(err).Msg("close backend")
		}
	}
}

func newService(name string, sc config.ServiceConfig, cfg *config.Config, h protocol.Handler, deps map[string]handlers.Pinger, closers []func(context.Context) error, log zerolog.Logger) *Service {
	s := &Service{
		Name:    name,
		rpc:     rpcserver.New(sc.Addr, h, log, rpcserver.WithService(name), rpcserver.WithMaxConns(cfg.MaxConns)),
		opsAddr: sc.OpsAddr,
		closers: closers,
		log:     log,
	}
	if sc.OpsAddr != "" {
		s.ops = opshttp.NewRouter(name, deps, log)
	}
	return s
}

// NewCustomerDB builds the account/session store process.
func NewCustomerDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	snap, closers, err := openSnapshot(ctx, cfg, "customer", cfg.CustomerDB.Data)
	if err != nil {
		return nil, err
	}
	store, err := service.NewCustomerStore(ctx, snap, cfg.SessionTimeout, log)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("customer store: %w", err)
	}
	h := api.NewCustomerHandler(store, log)
	return newService(protocol.ServiceCustomerDB, cfg.CustomerDB, cfg, h, map[string]handlers.Pinger{"snapshot": snap}, closers, log), nil
}

// NewProductDB builds the catalog/cart store process.
func NewProductDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	snap, closers, err := openSnapshot(ctx, cfg, "product", cfg.ProductDB.Data)
	if err != nil {
		return nil, err
	}
	store, err := service.NewProductStore(ctx, snap, log)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("product store: %w", err)
	}
	h := api.NewProductHandler(store, log)
	return newService(protocol.ServiceProductDB, cfg.ProductDB, cfg, h, map[string]handlers.Pinger{"snapshot": snap}, closers, log), nil
}

// NewBuyerFrontend builds the buyer-facing process. It keeps no state of its
// own and talks to both stores.
func NewBuyerFrontend(_ context.Context, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	customer, product, deps, closers := upstreams(cfg, log)
	f := service.NewBuyerFrontend(rpcclient.NewCustomerClient(customer), rpcclient.NewProductClient(product), log)
	h := api.NewBuyerHandler(f, log)
	return newService(protocol.ServiceBuyerFrontend, cfg.BuyerFrontend, cfg, h, deps, closers, log), nil
}

// NewSellerFrontend builds the seller-facing process.
func NewSellerFrontend(_ context.Context, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	customer, product, deps, closers := upstreams(cfg, log)
	f := service.NewSellerFrontend(rpcclient.NewCustomerClient(customer), rpcclient.NewProductClient(product), log)
	h := api.NewSellerHandler(f, log)
	return newService(protocol.ServiceSellerFrontend, cfg.SellerFrontend, cfg, h, deps, closers, log), nil
}

func upstreams(cfg *config.Config, log zerolog.Logger) (customer, product *rpcclient.Pool, deps map[string]handlers.Pinger, closers []func(context.Context) error) {
	customer = rpcclient.NewPool(cfg.CustomerDB.Addr, cfg.UpstreamConns, cfg.RPCTimeout, log)
	product = rpcclient.NewPool(cfg.ProductDB.Addr, cfg.UpstreamConns, cfg.RPCTimeout, log)
	deps = map[string]handlers.Pinger{
		protocol.ServiceCustomerDB: customer,
		protocol.ServiceProductDB:  product,
	}
	closers = []func(context.Context) error{
		func(context.Context) error { return customer.Close() },
		func(context.Context) error { return product.Close() },
	}
	return customer, product, deps, closers
}

// openSnapshot selects the configured snapshot backend for store.
func openSnapshot(ctx context.Context, cfg *config.Config, store, data string) (ports.SnapshotStore, []func(context.Context) error, error) {
	var (
		snap    ports.SnapshotStore
		closers []func(context.Context) error
	)
	switch cfg.Snapshot.Backend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func(context.Context) error { return client.Close() })
		snap = redisdb.NewSnapshotStore(client, cfg.Redis.KeyPrefix, store)
	case config.BackendMongo:
		client, database, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "marketplace-" + store})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, client.Disconnect)
		snap = mongodb.NewSnapshotStore(database, store)
	default:
		path := data
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Snapshot.Dir, path)
		}
		snap = file.NewSnapshotStore(path)
	}
	return db.Instrument(snap, store, cfg.Snapshot.Backend), closers, nil
}

func closeAll(closers []func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, c := range closers {
		_ = c(ctx)
	}
}
