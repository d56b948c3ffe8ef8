package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/servly-app/servly/internal/storage"
)

type Config struct {
	APIURL         string        `envconfig:"API_URL" default:"http://localhost:8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`

	// StorageBackend selects where session state is mirrored: "file" (the
	// default, one file per key under the state dir) or "redis".
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file"`
	StateDir       string `envconfig:"STATE_DIR"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// StubPort is only used by the servly-stub development server.
	StubPort string `envconfig:"STUB_PORT" default:"8080"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SERVLY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// NewStore builds the durable store the config selects.
func (c *Config) NewStore() (storage.Store, error) {
	switch c.StorageBackend {
	case "", "file":
		return storage.NewFileStore(c.StateDir)
	case "redis":
		return storage.NewRedisStore(c.RedisAddr), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
