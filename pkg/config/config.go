package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port          string
	Env           string // development, staging, production
	AllowedOrigin string // CORS origin for the dashboard
	CronSecret    string // bearer token required by /api/cron/* when set

	// Persistence
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig

	// Domain
	Leaderboard LeaderboardConfig
	Whales      WhalesConfig
	Markets     MarketsConfig
	Scheduler   SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// StoreConfig selects the repository implementation
type StoreConfig struct {
	Driver string // memory | postgres
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	Prefix   string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// LeaderboardConfig holds leaderboard ranking configuration
type LeaderboardConfig struct {
	PnLSpread   int     // pnl jitter width (symmetric around 0)
	ScoreSpread float64 // winRate / brierScore jitter width
	CacheTTL    time.Duration
}

// WhalesConfig holds whale scan configuration
type WhalesConfig struct {
	BatchSize int
}

// MarketsConfig holds market feed configuration
type MarketsConfig struct {
	Live          bool // fetch from Polymarket / Kalshi instead of the static catalog
	PolymarketURL string
	KalshiURL     string
	Limit         int
	CacheTTL      time.Duration
}

// SchedulerConfig holds cron job configuration
type SchedulerConfig struct {
	RankUpdateSchedule    string
	WhaleScanSchedule     string
	MarketRefreshSchedule string
	MaxRetries            int
	RetryDelay            time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		CronSecret:    getEnv("CRON_SECRET", ""),

		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreMemory),
		},

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Prefix:   getEnv("REDIS_PREFIX", "brier"),
		},

		Leaderboard: LeaderboardConfig{
			PnLSpread:   getEnvAsInt("LEADERBOARD_PNL_SPREAD", 10000),
			ScoreSpread: getEnvAsFloat("LEADERBOARD_SCORE_SPREAD", 1.0),
			CacheTTL:    getEnvAsDuration("LEADERBOARD_CACHE_TTL", "1m"),
		},

		Whales: WhalesConfig{
			BatchSize: getEnvAsInt("WHALE_BATCH_SIZE", 5),
		},

		Markets: MarketsConfig{
			Live:          getEnvAsBool("MARKETS_LIVE", false),
			PolymarketURL: getEnv("POLYMARKET_BASE_URL", "https://gamma-api.polymarket.com"),
			KalshiURL:     getEnv("KALSHI_BASE_URL", "https://api.elections.kalshi.com/trade-api/v2"),
			Limit:         getEnvAsInt("MARKETS_LIMIT", 10),
			CacheTTL:      getEnvAsDuration("MARKETS_CACHE_TTL", "10s"),
		},

		Scheduler: SchedulerConfig{
			RankUpdateSchedule:    getEnv("SCHEDULE_RANK_UPDATE", "0 0 0 * * *"),
			WhaleScanSchedule:     getEnv("SCHEDULE_WHALE_SCAN", "0 */1 * * * *"),
			MarketRefreshSchedule: getEnv("SCHEDULE_MARKET_REFRESH", "*/30 * * * * *"),
			MaxRetries:            getEnvAsInt("SCHEDULER_MAX_RETRIES", 3),
			RetryDelay:            getEnvAsDuration("SCHEDULER_RETRY_DELAY", "1m"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFrom loads an explicit .env file, then reads configuration as Load does.
// Variables already set in the environment win over the file.
func LoadFrom(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return Load()
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		// Postgres driver needs a connection string
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: memory, postgres")
	}

	if c.Leaderboard.PnLSpread < 0 {
		return fmt.Errorf("LEADERBOARD_PNL_SPREAD must be >= 0")
	}
	if c.Leaderboard.ScoreSpread < 0 {
		return fmt.Errorf("LEADERBOARD_SCORE_SPREAD must be >= 0")
	}
	if c.Whales.BatchSize <= 0 {
		return fmt.Errorf("WHALE_BATCH_SIZE must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
