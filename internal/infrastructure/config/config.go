package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Snapshot backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	SessionTimeout time.Duration `env:"SESSION_TIMEOUT, default=5m"`
	RPCTimeout     time.Duration `env:"RPC_TIMEOUT,     default=5s"`
	MaxConns       int64         `env:"MAX_CONNS,       default=1024"`
	UpstreamConns  int           `env:"UPSTREAM_CONNS,  default=8"`

	CustomerDB     ServiceConfig `env:", prefix=CUSTOMER_DB_"`
	ProductDB      ServiceConfig `env:", prefix=PRODUCT_DB_"`
	BuyerFrontend  ServiceConfig `env:", prefix=BUYER_FRONTEND_"`
	SellerFrontend ServiceConfig `env:", prefix=SELLER_FRONTEND_"`

	Snapshot SnapshotConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// ServiceConfig is the per-process listen surface. Empty addresses fall back
// to the defaults in Defaults; an empty OpsAddr disables the ops server.
type ServiceConfig struct {
	Addr    string `env:"ADDR"`
	OpsAddr string `env:"OPS_ADDR"`
	Data    string `env:"DATA"`
}

type SnapshotConfig struct {
	Backend string `env:"SNAPSHOT_BACKEND, default=file"`
	Dir     string `env:"DATA_DIR,         default=data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=marketplace:snapshot:"`
}

// Default listen addresses and snapshot file names.
const (
	DefaultCustomerDBAddr     = "127.0.0.1:7001"
	DefaultProductDBAddr      = "127.0.0.1:7002"
	DefaultBuyerFrontendAddr  = "127.0.0.1:7003"
	DefaultSellerFrontendAddr = "127.0.0.1:7004"

	DefaultCustomerData = "customer_db.json"
	DefaultProductData  = "product_db.json"
)

// Load reads configuration from the environment using go-envconfig. When path
// is non-empty the YAML file's KEY: value pairs are consulted for any
// variable the environment does not set.
func Load(ctx context.Context, path string) (*Config, error) {
	lookuper := envconfig.OsLookuper()
	if path != "" {
		values, err := readFile(path)
		if err != nil {
			return nil, err
		}
		lookuper = envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(values))
	}
	return load(ctx, lookuper)
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.CustomerDB.Addr, DefaultCustomerDBAddr)
	setDefault(&c.ProductDB.Addr, DefaultProductDBAddr)
	setDefault(&c.BuyerFrontend.Addr, DefaultBuyerFrontendAddr)
	setDefault(&c.SellerFrontend.Addr, DefaultSellerFrontendAddr)
	setDefault(&c.CustomerDB.Data, DefaultCustomerData)
	setDefault(&c.ProductDB.Data, DefaultProductData)
}

func (c *Config) validate() error {
	switch c.Snapshot.Backend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: SNAPSHOT_BACKEND must be file, redis or mongo, got %q", c.Snapshot.Backend)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("config: SESSION_TIMEOUT must be positive")
	}
	if c.RPCTimeout <= 0 {
		return fmt.Errorf("config: RPC_TIMEOUT must be positive")
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("config: MAX_CONNS must be positive")
	}
	if c.UpstreamConns <= 0 {
		return fmt.Errorf("config: UPSTREAM_CONNS must be positive")
	}
	return nil
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// readFile parses a flat YAML mapping of variable names to scalar values.
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	values := make(map[string]string, len(doc))
	for k, v := range doc {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config: %s: key %s must be a scalar", path, k)
		case nil:
			values[k] = ""
		default:
			values[k] = fmt.Sprint(v)
		}
	}
	return values, nil
}
