package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Security  SecurityConfig  `mapstructure:"security"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	API       APIConfig       `mapstructure:"api"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Type         string        `mapstructure:"type"` // postgres, sqlite
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"dbname"`
	Path         string        `mapstructure:"path"`    // For SQLite
	SSLMode      string        `mapstructure:"sslmode"` // For PostgreSQL
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// RedisConfig holds Redis configuration for shared security state.
// When disabled the CSRF guard falls back to an in-process store.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Enabled      bool          `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	PreviousJWTSecret string        `mapstructure:"previous_jwt_secret"` // verify-only, for key rotation
	EncryptionKey     string        `mapstructure:"encryption_key"`
	SessionLifetime   time.Duration `mapstructure:"session_lifetime"`
	RefreshLifetime   time.Duration `mapstructure:"refresh_lifetime"`
	CSRFLifetime      time.Duration `mapstructure:"csrf_lifetime"`
	BcryptCost        int           `mapstructure:"bcrypt_cost"`
	SecureCookies     bool          `mapstructure:"secure_cookies"`
	CookieDomain      string        `mapstructure:"cookie_domain"`
}

// RateLimitConfig holds per-endpoint-class rate limiter configuration
type RateLimitConfig struct {
	API     LimiterConfig `mapstructure:"api"`
	Auth    LimiterConfig `mapstructure:"auth"`
	Upload  LimiterConfig `mapstructure:"upload"`
	MaxKeys int           `mapstructure:"max_keys"` // LRU cap on distinct client keys
}

// LimiterConfig holds a single limiter's window configuration
type LimiterConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// APIConfig holds API-related configuration
type APIConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Start from a clean slate so repeated loads cannot inherit stale state
	viper.Reset()

	// Set default values
	setDefaults()

	// Set config file path
	viper.SetConfigFile(configPath)

	// Allow environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("TRANSERA")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults and env vars
			fmt.Printf("Warning: Config file not found at %s, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	// Override with environment variables
	overrideWithEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %v", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")

	// Database defaults
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.path", "./transera.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_lifetime", "5m")
	viper.SetDefault("database.query_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.dial_timeout", "5s")
	viper.SetDefault("redis.read_timeout", "3s")
	viper.SetDefault("redis.write_timeout", "3s")
	viper.SetDefault("redis.enabled", false)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.file", "./logs/app.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)

	// Security defaults
	viper.SetDefault("security.session_lifetime", "168h") // 7 days
	viper.SetDefault("security.refresh_lifetime", "720h") // 30 days
	viper.SetDefault("security.csrf_lifetime", "1h")
	viper.SetDefault("security.bcrypt_cost", 12)
	viper.SetDefault("security.secure_cookies", false)

	// Rate limit defaults: general API, login attempts, uploads
	viper.SetDefault("rate_limit.api.limit", 100)
	viper.SetDefault("rate_limit.api.window", "1m")
	viper.SetDefault("rate_limit.auth.limit", 10)
	viper.SetDefault("rate_limit.auth.window", "15m")
	viper.SetDefault("rate_limit.upload.limit", 30)
	viper.SetDefault("rate_limit.upload.window", "1h")
	viper.SetDefault("rate_limit.max_keys", 1000)

	// API defaults
	viper.SetDefault("api.timeout", "30s")

	// CORS defaults
	viper.SetDefault("api.cors.allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("api.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("api.cors.allowed_headers", []string{"Content-Type", "Authorization", "X-CSRF-Token"})
	viper.SetDefault("api.cors.allow_credentials", true)
	viper.SetDefault("api.cors.max_age", 86400)
}

// overrideWithEnvVars overrides config with specific environment variables
func overrideWithEnvVars() {
	// Critical environment variables that should always override config
	envMappings := map[string]string{
		"JWT_SECRET":          "security.jwt_secret",
		"JWT_SECRET_PREVIOUS": "security.previous_jwt_secret",
		"ENCRYPTION_KEY":      "security.encryption_key",
		"DB_PASSWORD":         "database.password",
		"DB_USER":             "database.user",
		"REDIS_URL":           "redis.addr",
		"REDIS_PASSWORD":      "redis.password",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			viper.Set(configKey, value)
		}
	}
}

// validateConfig validates the loaded configuration.
// A missing signing secret or encryption key is a fatal startup condition,
// never a per-request error.
func validateConfig(config *Config) error {
	if config.Security.JWTSecret == "" {
		return fmt.Errorf("JWT signing secret is required (set JWT_SECRET)")
	}

	if config.Security.EncryptionKey == "" {
		return fmt.Errorf("encryption key is required (set ENCRYPTION_KEY)")
	}

	if len(config.Security.EncryptionKey) < 32 {
		return fmt.Errorf("encryption key must be at least 32 characters")
	}

	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	// Validate database configuration
	if config.Database.Type == "postgres" {
		if config.Database.Host == "" || config.Database.User == "" {
			return fmt.Errorf("postgres requires host and user")
		}
	} else if config.Database.Type == "sqlite" {
		if config.Database.Path == "" {
			return fmt.Errorf("sqlite requires path")
		}
	} else {
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	if config.Security.BcryptCost < 10 || config.Security.BcryptCost > 16 {
		return fmt.Errorf("bcrypt cost must be between 10 and 16")
	}

	if config.RateLimit.MaxKeys <= 0 {
		return fmt.Errorf("rate limit key cap must be positive")
	}

	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	switch c.Database.Type {
	case "postgres":
		sslMode := c.Database.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host, c.Database.Port, c.Database.User,
			c.Database.Password, c.Database.DBName, sslMode)
	case "sqlite":
		return c.Database.Path
	default:
		return ""
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Mode == "debug" || c.Server.Mode == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release" || c.Server.Mode == "production"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// SanitizeForLogging returns a copy of the config with sensitive data redacted
func (c *Config) SanitizeForLogging() *Config {
	sanitized := *c

	if sanitized.Database.Password != "" {
		sanitized.Database.Password = "[REDACTED]"
	}

	if sanitized.Security.JWTSecret != "" {
		sanitized.Security.JWTSecret = "[REDACTED]"
	}

	if sanitized.Security.PreviousJWTSecret != "" {
		sanitized.Security.PreviousJWTSecret = "[REDACTED]"
	}

	if sanitized.Security.EncryptionKey != "" {
		sanitized.Security.EncryptionKey = "[REDACTED]"
	}

	if sanitized.Redis.Password != "" {
		sanitized.Redis.Password = "[REDACTED]"
	}

	return &sanitized
}
