package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Broadcast BroadcastConfig `json:"broadcast"`
	External  ExternalConfig  `json:"external"`
	Auth      AuthConfig      `json:"auth"`
	SeedFile  string          `json:"seed_file"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Postgres  PostgresConfig  `json:"postgres"`
	Redis     RedisConfig     `json:"redis"`
	Kafka     KafkaConfig     `json:"kafka"`
	Webhook   WebhookConfig   `json:"webhook"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	CORSOrigins     []string      `json:"cors_origins"`
}

type BroadcastConfig struct {
	SendBuffer   int           `json:"send_buffer"`
	WriteTimeout time.Duration `json:"write_timeout"`
	PingInterval time.Duration `json:"ping_interval"`
	ReadLimit    int64         `json:"read_limit"`
}

type ExternalConfig struct {
	NominatimURL   string        `json:"nominatim_url"`
	OSRMURL        string        `json:"osrm_url"`
	UserAgent      string        `json:"user_agent"`
	Timeout        time.Duration `json:"timeout"`
	SearchCacheTTL time.Duration `json:"search_cache_ttl"`
}

type AuthConfig struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

type RateLimitConfig struct {
	MutationsRPS   int `json:"mutations_rps"`
	MutationsBurst int `json:"mutations_burst"`
	ExternalRPS    int `json:"external_rps"`
	ExternalBurst  int `json:"external_burst"`
}

type PostgresConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

// WebhookEnabled reports whether hazard events should be queued for the webhook.
// The queue lives in Redis, so Redis has to be on as well.
func (c *Config) WebhookEnabled() bool {
	return c.Webhook.URL != "" && !c.Webhook.Disabled && c.Redis.Enabled
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8000"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		},
		Broadcast: BroadcastConfig{
			SendBuffer:   getEnvInt("WS_SEND_BUFFER", 32),
			WriteTimeout: getEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second),
			PingInterval: getEnvDuration("WS_PING_INTERVAL", 30*time.Second),
			ReadLimit:    int64(getEnvInt("WS_READ_LIMIT", 4096)),
		},
		External: ExternalConfig{
			NominatimURL:   getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			OSRMURL:        getEnv("OSRM_URL", "http://router.project-osrm.org"),
			UserAgent:      getEnv("EXTERNAL_USER_AGENT", "SafeRouteMVP/1.0"),
			Timeout:        getEnvDuration("EXTERNAL_TIMEOUT", 10*time.Second),
			SearchCacheTTL: getEnvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			Username: getEnv("AUTH_USERNAME", "admin"),
			Password: getEnv("AUTH_PASSWORD", "admin123"),
			Token:    getEnv("AUTH_TOKEN", "dummy-admin-token"),
		},
		SeedFile: getEnv("SEED_FILE", ""),
		RateLimit: RateLimitConfig{
			MutationsRPS:   getEnvInt("RATE_MUTATIONS_RPS", 5),
			MutationsBurst: getEnvInt("RATE_MUTATIONS_BURST", 20),
			ExternalRPS:    getEnvInt("RATE_EXTERNAL_RPS", 2),
			ExternalBurst:  getEnvInt("RATE_EXTERNAL_BURST", 10),
		},
		Postgres: PostgresConfig{
			Enabled:         getEnvBool("POSTGRES_ENABLED", false),
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "saferoute"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "hazard-events"),
		},
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.Bool("postgres", cfg.Postgres.Enabled),
		slog.Bool("redis", cfg.Redis.Enabled),
		slog.Bool("kafka", cfg.Kafka.Enabled()),
		slog.Bool("webhook", cfg.WebhookEnabled()))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8000'")
	}

	if c.Broadcast.SendBuffer <= 0 {
		return errors.New("WS_SEND_BUFFER must be positive")
	}

	if c.Broadcast.WriteTimeout <= 0 {
		return errors.New("WS_WRITE_TIMEOUT must be positive")
	}

	if c.External.NominatimURL == "" || c.External.OSRMURL == "" {
		return errors.New("NOMINATIM_URL and OSRM_URL required")
	}

	if c.Auth.Username == "" || c.Auth.Token == "" {
		return errors.New("AUTH_USERNAME and AUTH_TOKEN required")
	}

	if c.Postgres.Enabled && c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC required when KAFKA_BROKERS is set")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
