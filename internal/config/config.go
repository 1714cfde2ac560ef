package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Push     PushConfig
	Badges   BadgesConfig
	Logging  LoggingConfig
	Features FeatureConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Environment  string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	GracefulTimeout time.Duration `json:"graceful_timeout"`
	MaxHeaderBytes  int           `json:"max_header_bytes"`
	ServerName      string        `json:"server_name"`
	TrustedProxies  []string      `json:"trusted_proxies"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                 string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetime     time.Duration
	ConnMaxIdleTime     time.Duration
	ConnectTimeout      time.Duration
	SlowQueryThreshold  time.Duration
	EnableQueryLogging  bool
	HealthCheckInterval time.Duration
	MigrationsPath      string
	SSLMode             string

	// Retry behavior for the initial connection
	MaxRetryAttempts int           `json:"max_retry_attempts"`
	RetryBackoff     time.Duration `json:"retry_backoff"`
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Provider      string
	RedisURL      string
	RedisDB       int
	RedisPassword string
	DefaultTTL    time.Duration
	MaxKeys       int

	// Per-surface TTLs
	DailyTipTTL  time.Duration `json:"daily_tip_ttl"`
	DiscoverTTL  time.Duration `json:"discover_ttl"`
	ExpertTipTTL time.Duration `json:"expert_tip_ttl"`
}

// PushConfig holds push notification configuration
type PushConfig struct {
	Enabled     bool
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
	MaxRetries  int
	BatchSize   int
}

// BadgesConfig holds badge evaluation tuning
type BadgesConfig struct {
	// Session length classification, in seconds
	QuickColoringMaxSeconds    int
	MarathonColoringMinSeconds int

	// Local-time windows for session-moment badges
	NightStartHour int
	NightEndHour   int
	EarlyStartHour int
	EarlyEndHour   int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string
	Format     string
	Output     string
	EnableFile bool
	FilePath   string
}

// FeatureConfig holds feature flags
type FeatureConfig struct {
	EnablePushNotifications bool `json:"enable_push_notifications"`
	EnableContentCache      bool `json:"enable_content_cache"`
	EnableAnalysisIngest    bool `json:"enable_analysis_ingest"`
	MaintenanceMode         bool `json:"maintenance_mode"`
}

// Load reads configuration from the environment, with .env support
// outside production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load() // fallback to .env
		}
	}

	config := &Config{
		Server:   loadServerConfig(env),
		Database: loadDatabaseConfig(env),
		Cache:    loadCacheConfig(),
		Push:     loadPushConfig(env),
		Badges:   loadBadgesConfig(),
		Logging:  loadLoggingConfig(env),
		Features: loadFeatureConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// 🖥️ SERVER CONFIGURATION
func loadServerConfig(env string) ServerConfig {
	config := ServerConfig{
		Port:         getEnv("PORT", "9000"),
		Environment:  env,
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),

		GracefulTimeout: getDurationEnv("GRACEFUL_TIMEOUT", 30*time.Second),
		MaxHeaderBytes:  getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1MB
		ServerName:      getEnv("SERVER_NAME", "Zuna"),
	}

	switch env {
	case "production":
		config.TrustedProxies = splitEnv("TRUSTED_PROXIES", nil)
	case "staging":
		config.GracefulTimeout = 20 * time.Second
	default: // development
		config.GracefulTimeout = 10 * time.Second
	}

	return config
}

// 🗄️ DATABASE CONFIGURATION
func loadDatabaseConfig(env string) DatabaseConfig {
	var defaultMaxOpen, defaultMaxIdle int
	var defaultConnLifetime time.Duration

	switch env {
	case "production":
		defaultMaxOpen = 50
		defaultMaxIdle = 20
		defaultConnLifetime = 15 * time.Minute
	case "staging":
		defaultMaxOpen = 25
		defaultMaxIdle = 10
		defaultConnLifetime = 10 * time.Minute
	default: // development
		defaultMaxOpen = 10
		defaultMaxIdle = 5
		defaultConnLifetime = 5 * time.Minute
	}

	return DatabaseConfig{
		URL:                 os.Getenv("DATABASE_URL"),
		MaxOpenConns:        getIntEnv("DB_MAX_OPEN_CONNS", defaultMaxOpen),
		MaxIdleConns:        getIntEnv("DB_MAX_IDLE_CONNS", defaultMaxIdle),
		ConnMaxLifetime:     getDurationEnv("DB_CONN_MAX_LIFETIME", defaultConnLifetime),
		ConnMaxIdleTime:     getDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		ConnectTimeout:      getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
		SlowQueryThreshold:  getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
		EnableQueryLogging:  getBoolEnv("DB_ENABLE_QUERY_LOGGING", env == "development"),
		HealthCheckInterval: getDurationEnv("DB_HEALTH_CHECK_INTERVAL", 30*time.Second),
		MigrationsPath:      getEnv("DB_MIGRATIONS_PATH", "./migrations"),
		SSLMode:             getEnv("DB_SSL_MODE", defaultSSLMode(env)),
		MaxRetryAttempts:    getIntEnv("DB_MAX_RETRY_ATTEMPTS", 3),
		RetryBackoff:        getDurationEnv("DB_RETRY_BACKOFF", time.Second),
	}
}

// 🧠 CACHE CONFIGURATION
func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Provider:      getEnv("CACHE_PROVIDER", "memory"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		DefaultTTL:    getDurationEnv("CACHE_DEFAULT_TTL", 15*time.Minute),
		MaxKeys:       getIntEnv("CACHE_MAX_KEYS", 1000),
		DailyTipTTL:   getDurationEnv("CACHE_DAILY_TIP_TTL", time.Hour),
		DiscoverTTL:   getDurationEnv("CACHE_DISCOVER_TTL", 30*time.Minute),
		ExpertTipTTL:  getDurationEnv("CACHE_EXPERT_TIP_TTL", time.Hour),
	}
}

// 📲 PUSH CONFIGURATION
func loadPushConfig(env string) PushConfig {
	return PushConfig{
		Enabled:     getBoolEnv("PUSH_ENABLED", env == "production"),
		Endpoint:    getEnv("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),
		AccessToken: getEnv("PUSH_ACCESS_TOKEN", ""),
		Timeout:     getDurationEnv("PUSH_TIMEOUT", 10*time.Second),
		MaxRetries:  getIntEnv("PUSH_MAX_RETRIES", 3),
		BatchSize:   getIntEnv("PUSH_BATCH_SIZE", 100),
	}
}

// 🏅 BADGE CONFIGURATION
func loadBadgesConfig() BadgesConfig {
	return BadgesConfig{
		QuickColoringMaxSeconds:    getIntEnv("BADGES_QUICK_MAX_SECONDS", 300),
		MarathonColoringMinSeconds: getIntEnv("BADGES_MARATHON_MIN_SECONDS", 1800),
		NightStartHour:             getIntEnv("BADGES_NIGHT_START_HOUR", 22),
		NightEndHour:               getIntEnv("BADGES_NIGHT_END_HOUR", 5),
		EarlyStartHour:             getIntEnv("BADGES_EARLY_START_HOUR", 5),
		EarlyEndHour:               getIntEnv("BADGES_EARLY_END_HOUR", 8),
	}
}

// DefaultBadgesConfig returns badge tuning with the standard thresholds,
// ignoring the environment.
func DefaultBadgesConfig() BadgesConfig {
	return BadgesConfig{
		QuickColoringMaxSeconds:    300,
		MarathonColoringMinSeconds: 1800,
		NightStartHour:             22,
		NightEndHour:               5,
		EarlyStartHour:             5,
		EarlyEndHour:               8,
	}
}

// 📝 LOGGING CONFIGURATION
func loadLoggingConfig(env string) LoggingConfig {
	return LoggingConfig{
		Level:      getEnv("LOG_LEVEL", defaultLogLevel(env)),
		Format:     getEnv("LOG_FORMAT", defaultLogFormat(env)),
		Output:     getEnv("LOG_OUTPUT", "stdout"),
		EnableFile: getBoolEnv("LOG_ENABLE_FILE", env == "production"),
		FilePath:   getEnv("LOG_FILE_PATH", "/var/log/zuna/app.log"),
	}
}

// 🚀 FEATURE FLAGS
func loadFeatureConfig() FeatureConfig {
	return FeatureConfig{
		EnablePushNotifications: getBoolEnv("ENABLE_PUSH_NOTIFICATIONS", true),
		EnableContentCache:      getBoolEnv("ENABLE_CONTENT_CACHE", true),
		EnableAnalysisIngest:    getBoolEnv("ENABLE_ANALYSIS_INGEST", true),
		MaintenanceMode:         getBoolEnv("MAINTENANCE_MODE", false),
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.Badges.Validate(); err != nil {
		return fmt.Errorf("badges config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (s *ServerConfig) Validate() error {
	if s.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if s.ReadTimeout <= 0 {
		return fmt.Errorf("ReadTimeout must be positive")
	}

	if s.WriteTimeout <= 0 {
		return fmt.Errorf("WriteTimeout must be positive")
	}

	return nil
}

// Validate validates database configuration
func (d *DatabaseConfig) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if d.MaxOpenConns <= 0 {
		return fmt.Errorf("MaxOpenConns must be positive")
	}

	if d.MaxIdleConns < 0 {
		return fmt.Errorf("MaxIdleConns cannot be negative")
	}

	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("MaxIdleConns cannot be greater than MaxOpenConns")
	}

	return nil
}

// Validate validates badge tuning
func (b *BadgesConfig) Validate() error {
	if b.QuickColoringMaxSeconds <= 0 {
		return fmt.Errorf("QuickColoringMaxSeconds must be positive")
	}

	if b.MarathonColoringMinSeconds <= b.QuickColoringMaxSeconds {
		return fmt.Errorf("MarathonColoringMinSeconds must be greater than QuickColoringMaxSeconds")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Helper functions

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// splitEnv gets a comma-separated environment variable as a slice
func splitEnv(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// defaultSSLMode returns the default SSL mode for the environment
func defaultSSLMode(env string) string {
	if env == "production" {
		return "require"
	}
	return "disable"
}

// defaultLogLevel returns the default log level for the environment
func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

// defaultLogFormat returns the default log format for the environment
func defaultLogFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "console"
}
