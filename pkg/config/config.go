package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port           string
	AppEnv         string
	LogLevel       slog.Level
	RequestTimeout time.Duration

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPass     string
	PostgresDatabase string
	PostgresSSLMode  string

	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleIssuer       string

	CORSAllowedOrigins []string
	MaxUploadBytes     int64
}

// IsProduction switches cookies to Secure + SameSite=Strict.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			slog.Warn("env file not found", "files", envFiles)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			slog.Warn("env file not found, using system environment variables")
		}
	}

	maxConns, _ := strconv.Atoi(getEnvWithDefault("DB_MAX_CONNS", "25"))
	minConns, _ := strconv.Atoi(getEnvWithDefault("DB_MIN_CONNS", "5"))
	maxUpload, _ := strconv.ParseInt(getEnvWithDefault("MAX_UPLOAD_BYTES", "5242880"), 10, 64)

	required := map[string]string{}
	for _, key := range []string{
		"POSTGRES_HOST",
		"POSTGRES_PORT",
		"POSTGRES_USER",
		"POSTGRES_PASSWORD",
		"POSTGRES_DB",
		"JWT_SECRET",
		"JWT_REFRESH_SECRET",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
	} {
		value, err := getEnvRequired(key)
		if err != nil {
			return nil, err
		}
		required[key] = value
	}

	appEnv := strings.ToLower(getEnvWithDefault("APP_ENV", EnvDevelopment))
	if appEnv != EnvDevelopment && appEnv != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, appEnv)
	}

	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		AppEnv:         appEnv,
		LogLevel:       parseLogLevel(getEnvWithDefault("LOG_LEVEL", "info")),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),

		PostgresHost:     required["POSTGRES_HOST"],
		PostgresPort:     required["POSTGRES_PORT"],
		PostgresUser:     required["POSTGRES_USER"],
		PostgresPass:     required["POSTGRES_PASSWORD"],
		PostgresDatabase: required["POSTGRES_DB"],
		PostgresSSLMode:  getEnvWithDefault("POSTGRES_SSL_MODE", "disable"),

		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		JWTSecret:        required["JWT_SECRET"],
		JWTRefreshSecret: required["JWT_REFRESH_SECRET"],
		AccessTokenTTL:   getEnvAsDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:  getEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		GoogleClientID:     required["GOOGLE_CLIENT_ID"],
		GoogleClientSecret: required["GOOGLE_CLIENT_SECRET"],
		GoogleRedirectURL:  getEnvWithDefault("GOOGLE_REDIRECT_URL", "postmessage"),
		GoogleIssuer:       getEnvWithDefault("GOOGLE_ISSUER", "https://accounts.google.com"),

		CORSAllowedOrigins: splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MaxUploadBytes:     maxUpload,
	}

	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		slog.Warn("JWT_SECRET and JWT_REFRESH_SECRET are identical")
	}

	slog.Info("configuration loaded", "port", cfg.Port, "env", cfg.AppEnv, "db_host", cfg.PostgresHost)

	return cfg, nil
}

// for variables with default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// for required variables
func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", valueStr)
		return defaultValue
	}

	return duration
}

func parseLogLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
