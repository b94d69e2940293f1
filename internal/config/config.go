package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources.
const (
	CatalogSourceDefault  = "default"
	CatalogSourceFile     = "file"
	CatalogSourceS3       = "s3"
	CatalogSourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Catalog      CatalogConfig
	Redis        RedisConfig
	Verification VerificationConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database-related configuration. It is only used when
// the catalog is read from PostgreSQL.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey      string
	TokenSecret string
	TokenTTL    time.Duration
}

// CatalogConfig selects where the menu is loaded from.
type CatalogConfig struct {
	Source   string // default, file, s3 or postgres
	FilePath string
	S3Bucket string
	S3Region string
	S3Key    string
}

// RedisConfig holds the Redis connection used for verification codes.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// VerificationConfig holds one-time code settings.
type VerificationConfig struct {
	CodeTTL     time.Duration
	MaxAttempts int
}

// Load loads configuration from environment variables and, when CONFIG_FILE
// is set, from that YAML file. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetInt("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			MaxConnections:  v.GetInt("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: v.GetInt("DB_MAX_CONN_LIFETIME"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			APIKey:      v.GetString("API_KEY"),
			TokenSecret: v.GetString("TOKEN_SECRET"),
			TokenTTL:    v.GetDuration("TOKEN_TTL"),
		},
		Catalog: CatalogConfig{
			Source:   v.GetString("CATALOG_SOURCE"),
			FilePath: v.GetString("CATALOG_FILE"),
			S3Bucket: v.GetString("CATALOG_S3_BUCKET"),
			S3Region: v.GetString("CATALOG_S3_REGION"),
			S3Key:    v.GetString("CATALOG_S3_KEY"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Verification: VerificationConfig{
			CodeTTL:     v.GetDuration("VERIFICATION_CODE_TTL"),
			MaxAttempts: v.GetInt("VERIFICATION_MAX_ATTEMPTS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "tabletogether")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 1)
	v.SetDefault("DB_MAX_CONN_LIFETIME", 300)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TOKEN_TTL", "24h")

	v.SetDefault("CATALOG_SOURCE", CatalogSourceDefault)
	v.SetDefault("CATALOG_FILE", "data/catalog.json.gz")
	v.SetDefault("CATALOG_S3_REGION", "us-east-1")
	v.SetDefault("CATALOG_S3_KEY", "catalog/catalog.json.gz")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("VERIFICATION_CODE_TTL", "5m")
	v.SetDefault("VERIFICATION_MAX_ATTEMPTS", 5)
}

// splitList splits a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("token secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Catalog.Source {
	case CatalogSourceDefault:
	case CatalogSourceFile:
		if c.Catalog.FilePath == "" {
			return fmt.Errorf("catalog file path is required when catalog source is file")
		}
	case CatalogSourceS3:
		if c.Catalog.S3Bucket == "" {
			return fmt.Errorf("catalog S3 bucket is required when catalog source is s3")
		}
		if c.Catalog.S3Region == "" {
			return fmt.Errorf("catalog S3 region is required when catalog source is s3")
		}
		if c.Catalog.S3Key == "" {
			return fmt.Errorf("catalog S3 key is required when catalog source is s3")
		}
	case CatalogSourcePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be default, file, s3, or postgres)", c.Catalog.Source)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if c.Verification.CodeTTL <= 0 {
		return fmt.Errorf("verification code TTL must be positive")
	}

	if c.Verification.MaxAttempts < 1 {
		return fmt.Errorf("verification max attempts must be at least 1")
	}

	return nil
}

// Validate validates the database settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
