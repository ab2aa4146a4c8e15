package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrInvalidPublicKey = errors.New("invalid public key")

type Config struct {
	AppID        string `env:"APP_ID,required,notEmpty"`
	GuildID      string `env:"GUILD_ID"`
	BotToken     string `env:"DISCORD_TOKEN,required,notEmpty"`
	PublicKeyHex string `env:"PUBLIC_KEY,required,notEmpty"`
	AppPort      string `env:"PORT" envDefault:"3000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Sessions never accepted are dropped after SessionTTL; 0 keeps them
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	FollowUpTimeout time.Duration `env:"FOLLOW_UP_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Challenge limits (per user)
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	ChallengeRateLimit  int           `env:"CHALLENGE_RATE_LIMIT" envDefault:"5"`
	ChallengeRateWindow time.Duration `env:"CHALLENGE_RATE_WINDOW" envDefault:"1m"`

	// Match history is recorded only when set
	DatabaseURL string `env:"DATABASE_URL"`

	PublicKey ed25519.PublicKey
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	key, err := ParsePublicKey(cfg.PublicKeyHex)
	if err != nil {
		return nil, err
	}
	cfg.PublicKey = key

	if cfg.ChallengeRateLimit < 0 {
		cfg.ChallengeRateLimit = 0
	}
	if cfg.ChallengeRateWindow <= 0 {
		cfg.ChallengeRateWindow = time.Minute
	}

	return cfg, nil
}

// ParsePublicKey decodes the hex encoded ed25519 key from the developer portal.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPublicKey, ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// DatabaseConfig is the subset needed by the migrate command.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL,required,notEmpty"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`
}

// LoadDatabase reads an optional .env file and the database settings.
func LoadDatabase() (*DatabaseConfig, error) {
	_ = godotenv.Load()
	cfg := &DatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
