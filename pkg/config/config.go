package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DefaultSigningKey is only acceptable outside production.
const DefaultSigningKey = "defaultsecretkey"

// DBConfig holds database configuration
type DBConfig struct {
	Host            string `validate:"required"`
	Port            string `validate:"required,numeric"`
	User            string `validate:"required"`
	Password        string
	DBName          string `validate:"required"`
	SSLMode         string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxIdleConns    int    `validate:"gte=0"`
	MaxOpenConns    int    `validate:"gte=1"`
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
	Seed            bool
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string `validate:"required,numeric"`
	Env             string `validate:"oneof=development staging production test"`
	ShutdownTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string `validate:"required,min=8"`
	ExpirationHours int    `validate:"gte=1"`
	Issuer          string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string `validate:"required"`
}

// CacheConfig holds in-process cache configuration
type CacheConfig struct {
	SettingsTTL time.Duration
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Cache       CacheConfig
}

// Load loads configuration from an optional .env file and the environment
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", serviceName),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
			Seed:            getEnvAsBool("DB_SEED", false),
		},
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", DefaultSigningKey),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
			Issuer:          getEnv("JWT_ISSUER", serviceName),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
		Cache: CacheConfig{
			SettingsTTL: getEnvAsDuration("CACHE_SETTINGS_TTL", 5*time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var validate = validator.New()

// Validate checks field constraints and environment-specific rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Server.Env == "production" && c.JWT.SigningKey == DefaultSigningKey {
		return errors.New("invalid configuration: JWT_SIGNING_KEY must be set in production")
	}
	return nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_host", c.DB.Host),
		zap.String("db_port", c.DB.Port),
		zap.String("db_user", c.DB.User),
		zap.String("db_name", c.DB.DBName),
		zap.Bool("db_seed", c.DB.Seed),
		zap.String("server_port", c.Server.Port),
		zap.Int("jwt_expiration_hours", c.JWT.ExpirationHours),
		zap.Duration("settings_cache_ttl", c.Cache.SettingsTTL),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
