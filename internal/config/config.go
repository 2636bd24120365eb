package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported authentication modes. Exactly one is active per deployment.
const (
	AuthModeAPIKey = "apikey"
	AuthModeJWT    = "jwt"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBLogLevel string

	AuthMode     string
	APIKeyHeader string
	TokenHeader  string
	JWTSecret    string
	JWTIssuer    string
	JWTExpiresIn time.Duration

	// AllowEmailLogin must be set to run token mode in release mode,
	// since login checks nothing but a registered email.
	AllowEmailLogin bool

	// loadErrs collects values Load could not parse.
	loadErrs []error
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBDriver:     getEnv("DB_DRIVER", DriverPostgres),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "taskuser"),
		DBPassword:   getEnv("DB_PASSWORD", "taskpassword"),
		DBName:       getEnv("DB_NAME", "project_tracker"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBLogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		AuthMode:     getEnv("AUTH_MODE", AuthModeAPIKey),
		APIKeyHeader: getEnv("API_KEY_HEADER", "X-API-Key"),
		TokenHeader:  getEnv("TOKEN_HEADER", "Authorization"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTIssuer:    getEnv("JWT_ISSUER", "project-tracker-api"),
	}
	cfg.JWTExpiresIn = cfg.getDuration("JWT_EXPIRES_IN", time.Hour)
	cfg.AllowEmailLogin = cfg.getBool("AUTH_ALLOW_EMAIL_LOGIN", false)

	return cfg
}

// Validate reports configuration that would leave the server unusable.
func (c *Config) Validate() error {
	if len(c.loadErrs) > 0 {
		return errors.Join(c.loadErrs...)
	}

	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.AuthMode {
	case AuthModeAPIKey:
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
		if c.JWTExpiresIn <= 0 {
			return fmt.Errorf("JWT_EXPIRES_IN must be positive")
		}
		if c.IsProduction() && !c.AllowEmailLogin {
			return fmt.Errorf("AUTH_MODE=%s issues tokens for any registered email; set AUTH_ALLOW_EMAIL_LOGIN=true to run it in release mode", AuthModeJWT)
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE %q", c.AuthMode)
	}

	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.loadErrs = append(c.loadErrs, fmt.Errorf("invalid %s %q: %w", key, value, err))
		return defaultValue
	}
	return d
}

func (c *Config) getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		c.loadErrs = append(c.loadErrs, fmt.Errorf("invalid %s %q: %w", key, value, err))
		return defaultValue
	}
	return b
}
