package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries everything the dashboard process needs. The remote API base
// address is the single deployment-specific override; everything else has a
// compiled-in default suitable for local development.
type Config struct {
	Port          string        `env:"PORT,           default=3000"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	APIBaseURL    string        `env:"KHATA_API_URL,  default=http://localhost:8000/api"`
	SessionSecret string        `env:"SESSION_SECRET, default=dev-only-secret"`
	ProbeInterval time.Duration `env:"PROBE_INTERVAL, default=30s"`

	Credential CredentialConfig
	Redis      RedisConfig
}

// CredentialConfig selects where the bearer credential is persisted.
type CredentialConfig struct {
	Backend string `env:"CREDENTIAL_BACKEND, default=file"` // file or redis
	File    string `env:"CREDENTIAL_FILE,    default=.khata/credential.json"`
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
