package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Chain     ChainConfig
	OpenAI    OpenAIConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Snapshot store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StoreConfig selects and configures the backend holding the treasury snapshot.
type StoreConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
	EncryptionKey string // fernet key; empty disables sealing
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Price sources for wallet sync.
const (
	PriceSourceStatic    = "static"
	PriceSourceCoinGecko = "coingecko"
)

// ChainConfig holds wallet sync settings.
type ChainConfig struct {
	RPCURLs          map[int64]string // chain ID -> JSON-RPC endpoint
	RPS              float64
	PriceSource      string
	CoinGeckoBaseURL string
}

// OpenAIConfig configures the optional sentiment provider. An empty APIKey disables it.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// SchedulerConfig holds cron specs for the background refresh jobs.
type SchedulerConfig struct {
	Enabled   bool
	Market    string
	Analytics string
	Wallet    string
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string
	Format string
}

const rpcURLPrefix = "ETH_RPC_URL_"

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var errs []string
	intEnv := func(key string, def int) int {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be an integer", key))
		}
		return v
	}
	floatEnv := func(key string, def float64) float64 {
		v, err := strconv.ParseFloat(getEnv(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be a number", key))
		}
		return v
	}
	boolEnv := func(key string, def bool) bool {
		v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(def)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be a boolean", key))
		}
		return v
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/dao_treasury.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       intEnv("REDIS_DB", 0),
			PostgresDSN:   os.Getenv("POSTGRES_DSN"),
			EncryptionKey: os.Getenv("SNAPSHOT_ENCRYPTION_KEY"),
		},
		RateLimit: RateLimitConfig{
			RPS:   floatEnv("RATE_LIMIT_RPS", 20),
			Burst: intEnv("RATE_LIMIT_BURST", 40),
		},
		Chain: ChainConfig{
			RPCURLs:          rpcURLs(os.Environ()),
			RPS:              floatEnv("RPC_RPS", 5),
			PriceSource:      strings.ToLower(getEnv("PRICE_SOURCE", PriceSourceStatic)),
			CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		},
		Scheduler: SchedulerConfig{
			Enabled:   boolEnv("SCHEDULER_ENABLED", false),
			Market:    getEnv("SCHEDULE_MARKET", "@every 5m"),
			Analytics: getEnv("SCHEDULE_ANALYTICS", "@hourly"),
			Wallet:    getEnv("SCHEDULE_WALLET", "@every 10m"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}

	switch config.Store.Driver {
	case DriverSQLite, DriverRedis:
	case DriverPostgres:
		if config.Store.PostgresDSN == "" {
			errs = append(errs, "POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown STORE_DRIVER %q", config.Store.Driver))
	}

	if config.RateLimit.RPS > 0 && config.RateLimit.Burst < 1 {
		errs = append(errs, "RATE_LIMIT_BURST must be at least 1 when RATE_LIMIT_RPS is set")
	}

	switch config.Chain.PriceSource {
	case PriceSourceStatic, PriceSourceCoinGecko:
	default:
		errs = append(errs, fmt.Sprintf("unknown PRICE_SOURCE %q", config.Chain.PriceSource))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// rpcURLs collects ETH_RPC_URL_<chainId> entries from environ.
func rpcURLs(environ []string) map[int64]string {
	urls := make(map[int64]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(key, rpcURLPrefix) {
			continue
		}
		chainID, err := strconv.ParseInt(strings.TrimPrefix(key, rpcURLPrefix), 10, 64)
		if err != nil {
			continue
		}
		urls[chainID] = value
	}
	return urls
}
