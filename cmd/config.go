package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort       string
	StorageBackend string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL      string
	RabbitMQExchange string

	LogLevel slog.Level

	PromotionMinCompletedOrders int
	JuniorBakerMaxActiveOrders  int
	UnclaimedOrderAfter         time.Duration
	MessageRetention            time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitIdle  time.Duration

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// DSN is the PostgreSQL connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads the given .env files, when they exist, and then the
// process environment. Without arguments it looks for ".env".
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var p parser
	cfg := Config{
		HTTPPort:       p.str("HTTP_PORT", "8080"),
		StorageBackend: p.str("STORAGE_BACKEND", StorageMemory),

		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", "postgres"),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", "bakery"),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),

		RabbitMQURL:      p.str("RABBITMQ_URL", ""),
		RabbitMQExchange: p.str("RABBITMQ_EXCHANGE", "bakery.events"),

		LogLevel: p.level("LOG_LEVEL", slog.LevelInfo),

		PromotionMinCompletedOrders: p.integer("PROMOTION_MIN_COMPLETED_ORDERS", 5),
		JuniorBakerMaxActiveOrders:  p.integer("JUNIOR_BAKER_MAX_ACTIVE_ORDERS", 0),
		UnclaimedOrderAfter:         p.duration("UNCLAIMED_ORDER_AFTER", 30*time.Minute),
		MessageRetention:            p.duration("MESSAGE_RETENTION", 720*time.Hour),

		RateLimitRPS:   p.float("RATE_LIMIT_RPS", 20),
		RateLimitBurst: p.integer("RATE_LIMIT_BURST", 40),
		RateLimitIdle:  p.duration("RATE_LIMIT_IDLE", 10*time.Minute),

		BootstrapAdminEmail:    p.str("BOOTSTRAP_ADMIN_EMAIL", ""),
		BootstrapAdminPassword: p.str("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	if cfg.StorageBackend != StorageMemory && cfg.StorageBackend != StoragePostgres {
		p.fail("STORAGE_BACKEND", fmt.Errorf("%q is neither %q nor %q", cfg.StorageBackend, StorageMemory, StoragePostgres))
	}
	if cfg.PromotionMinCompletedOrders < 0 {
		p.fail("PROMOTION_MIN_COMPLETED_ORDERS", errors.New("must not be negative"))
	}
	if cfg.JuniorBakerMaxActiveOrders < 0 {
		p.fail("JUNIOR_BAKER_MAX_ACTIVE_ORDERS", errors.New("must not be negative"))
	}
	if cfg.UnclaimedOrderAfter <= 0 {
		p.fail("UNCLAIMED_ORDER_AFTER", errors.New("must be positive"))
	}
	if cfg.MessageRetention <= 0 {
		p.fail("MESSAGE_RETENTION", errors.New("must be positive"))
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		p.fail("RATE_LIMIT_RPS", errors.New("rate and burst must be positive"))
	}
	if cfg.RateLimitIdle <= 0 {
		p.fail("RATE_LIMIT_IDLE", errors.New("must be positive"))
	}
	if (cfg.BootstrapAdminEmail == "") != (cfg.BootstrapAdminPassword == "") {
		p.fail("BOOTSTRAP_ADMIN_EMAIL", errors.New("email and password must be set together"))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser collects every malformed key instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) fail(key string, cause error) {
	p.errs = append(p.errs, errs.NewValueIsInvalidErrorWithCause(key, cause))
}

func (p *parser) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (p *parser) integer(key string, fallback int) int {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}

func (p *parser) level(key string, fallback slog.Level) slog.Level {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := logger.ParseLevel(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return v
}
