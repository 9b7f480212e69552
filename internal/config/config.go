package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Report   ReportConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	LogLevel         string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
	SeedsPath       string
	AutoMigrate     bool
	Seed            bool
}

type JWTConfig struct {
	AccessTokenDuration time.Duration
	PrivateKey          *rsa.PrivateKey
	PublicKey           *rsa.PublicKey
	Issuer              string
}

type SecurityConfig struct {
	BCryptCost         int
	RateLimitPerSecond int
	RateLimitBurst     int
	PasswordMinLength  int
}

// ReportConfig bounds the work done by a single monthly report request.
type ReportConfig struct {
	FetchTimeout time.Duration
}

type JobsConfig struct {
	TokenCleanupSchedule string
}

// Load reads configuration from the environment. Values from a .env file in the
// working directory are applied first; variables already set in the process win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            envString("SERVER_PORT", "8080"),
			Host:            envString("SERVER_HOST", "localhost"),
			Environment:     envString("APP_ENV", "development"),
			LogLevel:        envString("LOG_LEVEL", "info"),
			ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            envString("DB_HOST", "localhost"),
			Port:            envString("DB_PORT", "5432"),
			User:            envString("DB_USER", "expense_user"),
			Password:        envString("DB_PASSWORD", "expense_password"),
			Name:            envString("DB_NAME", "expense_manager"),
			SSLMode:         envString("DB_SSL_MODE", "disable"),
			MaxConnections:  envInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			MigrationsPath:  envString("DB_MIGRATIONS_PATH", "db/migrations"),
			SeedsPath:       envString("DB_SEEDS_PATH", "db/seeds"),
			AutoMigrate:     envBool("AUTO_MIGRATE", false),
			Seed:            envBool("SEED_DATABASE", false),
		},
		Security: SecurityConfig{
			BCryptCost:         envInt("BCRYPT_COST", 12),
			RateLimitPerSecond: envInt("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     envInt("RATE_LIMIT_BURST", 10),
			PasswordMinLength:  envInt("PASSWORD_MIN_LENGTH", 8),
		},
		JWT: JWTConfig{
			AccessTokenDuration: envDuration("JWT_ACCESS_TOKEN_DURATION", 24*time.Hour),
			Issuer:              envString("JWT_ISSUER", "expense-manager"),
		},
		Report: ReportConfig{
			FetchTimeout: envDuration("REPORT_FETCH_TIMEOUT", 10*time.Second),
		},
		Jobs: JobsConfig{
			TokenCleanupSchedule: envString("TOKEN_CLEANUP_SCHEDULE", "@every 1h"),
		},
	}

	cfg.Server.CORSAllowOrigins = cfg.corsOrigins()

	privateKey, publicKey, err := cfg.loadJWTKeys()
	if err != nil {
		slog.Error("cannot load JWT signing keys", "error", err)
		os.Exit(1)
	}
	cfg.JWT.PrivateKey, cfg.JWT.PublicKey = privateKey, publicKey

	return cfg
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

// corsOrigins reads the comma separated CORS_ALLOW_ORIGINS list. Unset means "*".
func (c *Config) corsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS"))
	if raw == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS is not set, every origin is allowed")
		}
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *ServerConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
