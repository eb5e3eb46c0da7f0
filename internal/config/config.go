package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Orders transports
const (
	TransportGraphQL = "graphql"
	TransportGRPC    = "grpc"
)

// Config stores service settings.
type Config struct {
	Port       int
	DB         DB
	Migrations bool
	Orders     Orders
	Kafka      Kafka
	Redis      Redis
	JWTSecret  string
	Delivery   Delivery
	RateLimit  RateLimit
	Pprof      PprofConfig
	Telemetry  Telemetry
	Log        Log
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Orders stores the commerce backend gateway settings.
type Orders struct {
	Transport   string
	GraphQLURL  string
	GRPCAddr    string
	APIToken    string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Kafka stores worker settings. The worker is off when Brokers is empty.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
	OffersTopic string
}

// Redis stores idempotency store settings. The store is off when Addr is empty.
type Redis struct {
	Addr           string
	IdempotencyTTL time.Duration
}

// Delivery stores rider flow settings.
type Delivery struct {
	PollInterval      time.Duration
	TransitionTimeout time.Duration
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores pprof server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Telemetry stores tracing settings.
type Telemetry struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// Log stores logger settings.
type Log struct {
	Backend string
	Level   string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		DB:        defaultDB,
		Orders:    defaultOrders,
		Kafka:     defaultKafka,
		Redis:     defaultRedis,
		Delivery:  defaultDelivery,
		RateLimit: defaultRateLimit,
		Pprof:     defaultPprof,
		Telemetry: defaultTelemetry,
		Log:       defaultLog,
	}

	r := envReader{}
	cfg.Port = r.int("PORT", cfg.Port)

	cfg.DB.Host = r.str("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = r.str("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = r.str("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = r.str("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = r.str("POSTGRES_DB", cfg.DB.Name)
	cfg.Migrations = r.bool("MIGRATIONS_ENABLED", true)

	cfg.Orders.Transport = strings.ToLower(r.str("ORDERS_TRANSPORT", cfg.Orders.Transport))
	cfg.Orders.GraphQLURL = r.str("ORDERS_GRAPHQL_URL", cfg.Orders.GraphQLURL)
	cfg.Orders.GRPCAddr = r.str("ORDERS_GRPC_ADDR", cfg.Orders.GRPCAddr)
	cfg.Orders.APIToken = r.str("ORDERS_API_TOKEN", "")
	cfg.Orders.Timeout = r.duration("ORDERS_TIMEOUT", cfg.Orders.Timeout)
	cfg.Orders.MaxAttempts = r.int("ORDERS_RETRY_MAX_ATTEMPTS", cfg.Orders.MaxAttempts)
	cfg.Orders.BaseDelay = r.duration("ORDERS_RETRY_BASE_DELAY", cfg.Orders.BaseDelay)
	cfg.Orders.MaxDelay = r.duration("ORDERS_RETRY_MAX_DELAY", cfg.Orders.MaxDelay)

	cfg.Kafka.Brokers = r.list("KAFKA_BROKERS")
	cfg.Kafka.GroupID = r.str("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.OrdersTopic = r.str("KAFKA_ORDERS_TOPIC", cfg.Kafka.OrdersTopic)
	cfg.Kafka.OffersTopic = r.str("KAFKA_OFFERS_TOPIC", cfg.Kafka.OffersTopic)

	cfg.Redis.Addr = r.str("REDIS_ADDR", "")
	cfg.Redis.IdempotencyTTL = r.duration("IDEMPOTENCY_TTL", cfg.Redis.IdempotencyTTL)

	cfg.JWTSecret = r.str("JWT_SECRET", "")

	cfg.Delivery.PollInterval = r.duration("FEED_POLL_INTERVAL", cfg.Delivery.PollInterval)
	cfg.Delivery.TransitionTimeout = r.duration("TRANSITION_CALL_TIMEOUT", cfg.Delivery.TransitionTimeout)

	cfg.RateLimit.Enabled = r.bool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = r.float("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = r.int("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = r.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = r.int("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Pprof.Enabled = r.bool("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.Addr = r.str("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = r.str("PPROF_USER", "")
	cfg.Pprof.Pass = r.str("PPROF_PASSWORD", "")

	cfg.Telemetry.Enabled = r.bool("OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Endpoint = r.str("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.ServiceName = r.str("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)

	cfg.Log.Backend = strings.ToLower(r.str("LOG_BACKEND", cfg.Log.Backend))
	cfg.Log.Level = strings.ToLower(r.str("LOG_LEVEL", cfg.Log.Level))

	if r.err != nil {
		return nil, r.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	switch c.Orders.Transport {
	case TransportGraphQL, TransportGRPC:
	default:
		return fmt.Errorf("invalid ORDERS_TRANSPORT: %q", c.Orders.Transport)
	}
	if c.Orders.MaxAttempts < 1 {
		return fmt.Errorf("invalid ORDERS_RETRY_MAX_ATTEMPTS: %d", c.Orders.MaxAttempts)
	}
	if c.Delivery.PollInterval <= 0 {
		return fmt.Errorf("invalid FEED_POLL_INTERVAL: %s", c.Delivery.PollInterval)
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid LOG_BACKEND: %q", c.Log.Backend)
	}
	return nil
}

// envReader keeps the first parse error so Load can report it once.
type envReader struct {
	err error
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) list(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *envReader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
