package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Frontend FrontendConfig
	Session  SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:9000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

type FrontendConfig struct {
	BaseURL string `env:"FRONTEND_BASE_URL, default=http://localhost:3000"`
}

type SessionConfig struct {
	// TokenTTL bounds both the stored token and the cookie copies.
	TokenTTL time.Duration `env:"SESSION_TOKEN_TTL, default=168h"`
	// AuditWorkers sizes the audit dispatcher pool.
	AuditWorkers int `env:"SESSION_AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=courtside_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
