package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Delivery DeliveryConfig
	Throttle ThrottleConfig
}

// AuthConfig carries the signing secrets and credential lifetimes. The
// secrets are distinct per credential kind, loaded once here and passed into
// constructors; nothing reads the environment after startup.
type AuthConfig struct {
	AccessSecret  string `env:"AUTH_ACCESS_SECRET"`
	RefreshSecret string `env:"AUTH_REFRESH_SECRET"`
	InviteSecret  string `env:"AUTH_INVITE_SECRET"`

	AccessTTLMinutes int `env:"AUTH_ACCESS_TTL_MINUTES, default=15"`
	RefreshTTLHours  int `env:"AUTH_REFRESH_TTL_HOURS,  default=12"`
	InviteTTLMinutes int `env:"AUTH_INVITE_TTL_MINUTES, default=30"`
	CodeTTLMinutes   int `env:"AUTH_CODE_TTL_MINUTES,   default=15"`
	BcryptCost       int `env:"AUTH_BCRYPT_COST,        default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bar_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type DeliveryConfig struct {
	Workers        int    `env:"DELIVERY_WORKERS, default=4"`
	MailBaseURL    string `env:"MAIL_BASE_URL,    default=http://localhost:8080"`
	ChatWebhookURL string `env:"CHAT_WEBHOOK_URL"`
}

type ThrottleConfig struct {
	Limit         int `env:"THROTTLE_LIMIT,          default=10"`
	WindowSeconds int `env:"THROTTLE_WINDOW_SECONDS, default=60"`
}

func (c AuthConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

func (c AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLHours) * time.Hour
}

func (c AuthConfig) InviteTTL() time.Duration {
	return time.Duration(c.InviteTTLMinutes) * time.Minute
}

func (c AuthConfig) CodeTTL() time.Duration {
	return time.Duration(c.CodeTTLMinutes) * time.Minute
}

func (c ThrottleConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
