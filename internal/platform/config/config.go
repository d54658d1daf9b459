package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresFromEnv reads the POSTGRES_* variables. The one-shot commands use
// it directly since they need nothing else from Config.
func PostgresFromEnv() Postgres {
	return Postgres{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     envOr("POSTGRES_PORT", "5432"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DB:       os.Getenv("POSTGRES_DB"),
	}
}

// Config captures process level configuration.
type Config struct {
	Addr                 string
	LogLevel             string
	Storage              string // "postgres" or "memory"
	Postgres             Postgres
	Redis                Redis
	JWTSecret            string
	TokenTTL             time.Duration
	CORSOrigins          []string
	Cooldown             time.Duration
	UnidentifiedVotes    domain.UnidentifiedVotePolicy
	OTPTTL               time.Duration
	BroadcastTimeout     time.Duration
	SubscriberBufferSize int
	NicknameCooldown     time.Duration
	RegionMaxDistanceKm  float64
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:     envOr("ADDR", "0.0.0.0:8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),
		Storage:  envOr("STORAGE", "postgres"),
		Postgres: PostgresFromEnv(),
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CORSOrigins:          splitList(os.Getenv("CORS_ORIGINS")),
		UnidentifiedVotes:    domain.UnidentifiedVotePolicy(envOr("UNIDENTIFIED_VOTE_POLICY", string(domain.UnidentifiedAllow))),
		SubscriberBufferSize: 16,
	}

	var err error
	if cfg.Cooldown, err = durationOr("VOTE_COOLDOWN", domain.DefaultCooldown); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL, err = durationOr("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.OTPTTL, err = durationOr("OTP_TTL", 3*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastTimeout, err = durationOr("BROADCAST_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.NicknameCooldown, err = durationOr("NICKNAME_COOLDOWN", domain.NicknameCooldown); err != nil {
		return Config{}, err
	}
	if cfg.RegionMaxDistanceKm, err = floatOr("REGION_MAX_DISTANCE_KM", 60); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.UnidentifiedVotes {
	case domain.UnidentifiedAllow, domain.UnidentifiedReject:
	default:
		return fmt.Errorf("invalid UNIDENTIFIED_VOTE_POLICY %q", c.UnidentifiedVotes)
	}
	switch c.Storage {
	case "postgres", "memory":
	default:
		return fmt.Errorf("invalid STORAGE %q", c.Storage)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("VOTE_COOLDOWN must not be negative")
	}
	if c.NicknameCooldown < 0 {
		return fmt.Errorf("NICKNAME_COOLDOWN must not be negative")
	}
	if c.RegionMaxDistanceKm <= 0 {
		return fmt.Errorf("REGION_MAX_DISTANCE_KM must be positive")
	}
	if c.Storage == "postgres" && c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required when STORAGE=postgres")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func floatOr(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
