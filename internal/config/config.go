// Package config provides application configuration loaded from environment variables.
// Use the package-level Get() function to obtain the singleton Config instance.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sub-config structs
// ──────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        // e.g. "8080"
	Env          string        // "development" | "production"
	ReadTimeout  time.Duration // default 10s
	WriteTimeout time.Duration // default 10s

	// AllowedOrigins is the CORS allowlist used in production. Comma-separated
	// in CORS_ALLOWED_ORIGINS.
	AllowedOrigins []string
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	DSN             string        // full postgres DSN
	MaxOpenConns    int           // default 25
	MaxIdleConns    int           // default 10
	ConnMaxLifetime time.Duration // default 5m
}

// JWTConfig holds JWT signing settings.
type JWTConfig struct {
	AccessSecret  string        // must be set
	RefreshSecret string        // must be set
	AccessTTL     time.Duration // default 15m
	RefreshTTL    time.Duration // default 720h (30 days)
}

// FundingConfig holds the investment ledger and revenue distribution settings.
type FundingConfig struct {
	// EnforceMinInvestment rejects investments below the project's
	// min_investment when true. Default false: the marketplace historically
	// accepted any positive amount, and flipping this is a product decision.
	EnforceMinInvestment bool

	// AllowInvestAfterCompletion accepts investments into COMPLETED projects
	// when true. Default true for the same historical reason; such capital
	// never receives a payout since distribution has already run.
	AllowInvestAfterCompletion bool

	// CurrencyPrecision is the number of decimal places payouts are rounded
	// to. Default 2.
	CurrencyPrecision int

	// AllocateRemainder adds the rounding residual of a distribution to the
	// largest investor's payout so payouts sum exactly to the reported
	// revenue. Default true.
	AllocateRemainder bool

	// ScanTimeout bounds the investment-set read during a distribution so a
	// pathological store surfaces as a retryable error instead of blocking.
	// Default 10s.
	ScanTimeout time.Duration
}

// AnalyticsConfig holds the synthetic creator-analytics settings.
type AnalyticsConfig struct {
	RefreshInterval time.Duration // how often the refresh loop runs, default 10m
	StaleAfter      time.Duration // analytics older than this are regenerated, default 24h
}

// InsightConfig holds the AI insight worker settings.
type InsightConfig struct {
	PollInterval time.Duration // worker poll cadence, default 5s
}

// ──────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ──────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for the entire application.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Funding   FundingConfig
	Analytics AnalyticsConfig
	Insight   InsightConfig
}

// IsProd returns true when running in the production environment.
func (c *Config) IsProd() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// Returns the first validation error encountered.
func (c *Config) Validate() error {
	var errs []error

	// JWT secrets are mandatory
	if c.JWT.AccessSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET must be set"))
	}
	if c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_REFRESH_SECRET must be set"))
	}

	// In production, DB DSN must be explicit
	if c.IsProd() && c.DB.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must be set in production"))
	}

	// Payout precision sanity check
	if c.Funding.CurrencyPrecision < 0 || c.Funding.CurrencyPrecision > 8 {
		errs = append(errs, fmt.Errorf(
			"FUNDING_CURRENCY_PRECISION must be between 0 and 8, got %d",
			c.Funding.CurrencyPrecision,
		))
	}
	if c.Funding.ScanTimeout <= 0 {
		errs = append(errs, errors.New("FUNDING_SCAN_TIMEOUT must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Singleton
// ──────────────────────────────────────────────────────────────────────────────

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the singleton Config, loading it once from environment variables.
// Panics if loading fails — call this early in main() to catch misconfigurations
// at startup.
func Get() *Config {
	once.Do(func() {
		instance, loadErr = load()
	})
	if loadErr != nil {
		panic(fmt.Sprintf("config: failed to load: %v", loadErr))
	}
	return instance
}

// MustLoad loads and validates configuration. Intended for use in main().
// Panics on any error so misconfiguration is caught immediately at boot.
func MustLoad() *Config {
	cfg := Get()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: validation failed: %v", err))
	}
	return cfg
}

// ──────────────────────────────────────────────────────────────────────────────
// Internal loader
// ──────────────────────────────────────────────────────────────────────────────

func load() (*Config, error) {
	cfg := &Config{}

	// ── Server ────────────────────────────────────────────────────────────────
	cfg.Server = ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		Env:          getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
	}
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
			}
		}
	}

	// ── Database ──────────────────────────────────────────────────────────────
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Build DSN from individual components for convenience in dev
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "tapp_db"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS: %w", err)
	}

	cfg.DB = DBConfig{
		DSN:             dsn,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	// ── JWT ───────────────────────────────────────────────────────────────────
	cfg.JWT = JWTConfig{
		AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		AccessTTL:     getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    getDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
	}

	// ── Funding / ledger ──────────────────────────────────────────────────────
	precision, err := getInt("FUNDING_CURRENCY_PRECISION", 2)
	if err != nil {
		return nil, fmt.Errorf("FUNDING_CURRENCY_PRECISION: %w", err)
	}

	cfg.Funding = FundingConfig{
		EnforceMinInvestment:       getBool("FUNDING_ENFORCE_MIN_INVESTMENT", false),
		AllowInvestAfterCompletion: getBool("FUNDING_ALLOW_INVEST_AFTER_COMPLETION", true),
		CurrencyPrecision:          precision,
		AllocateRemainder:          getBool("FUNDING_ALLOCATE_REMAINDER", true),
		ScanTimeout:                getDuration("FUNDING_SCAN_TIMEOUT", 10*time.Second),
	}

	// ── Analytics ─────────────────────────────────────────────────────────────
	cfg.Analytics = AnalyticsConfig{
		RefreshInterval: getDuration("ANALYTICS_REFRESH_INTERVAL", 10*time.Minute),
		StaleAfter:      getDuration("ANALYTICS_STALE_AFTER", 24*time.Hour),
	}

	// ── Insight worker ────────────────────────────────────────────────────────
	cfg.Insight = InsightConfig{
		PollInterval: getDuration("INSIGHT_POLL_INTERVAL", 5*time.Second),
	}

	return cfg, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helper functions
// ──────────────────────────────────────────────────────────────────────────────

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

// getBool parses an env var as a boolean ("true"/"1"/"false"/"0").
// Falls back to defaultVal if the variable is unset or unparsable.
func getBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// getDuration parses an env var as a Go duration string (e.g. "15m", "2s").
// Falls back to defaultVal if the variable is unset or empty.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Fall back to default; do not crash on parse error
		return defaultVal
	}
	return d
}
