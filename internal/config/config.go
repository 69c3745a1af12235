package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port         string
	DatabaseURL  string
	DBMaxConns   int32
	JWTSecret    string
	JWTAlgorithm string
	JWTIssuer    string
	JWTTTL       time.Duration
	BcryptCost   int
	CORSOrigins  []string
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAlgorithm: strings.ToUpper(strings.TrimSpace(os.Getenv("JWT_ALGORITHM"))),
		JWTIssuer:    fallback(os.Getenv("JWT_ISSUER"), "octagoniq-api"),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:     strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:    strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "json")),
	}

	cfg.JWTTTL = time.Duration(positiveInt(os.Getenv("JWT_TTL_MINUTES"), 60)) * time.Minute
	cfg.DBMaxConns = int32(positiveInt(os.Getenv("DB_MAX_CONNS"), 10))

	cfg.BcryptCost = positiveInt(os.Getenv("BCRYPT_COST"), bcrypt.DefaultCost)
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.JWTAlgorithm == "" {
		return Config{}, errors.New("JWT_ALGORITHM is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
