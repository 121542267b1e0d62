package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port            int           `env:"PORT" validate:"gt=0,lt=65536"`
	DatabaseURL     string        `env:"DATABASE_URL" validate:"required"`
	LogLevel        string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string        `env:"LOG_FORMAT" validate:"oneof=json text"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" validate:"min=1"`
	PasswordDigest  string        `env:"PASSWORD_DIGEST" validate:"oneof=md5 blake2b"`
	DBMaxConns      int32         `env:"DB_MAX_CONNS" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gt=0"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:            atoi(fallback(os.Getenv("PORT"), "8080")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:        strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:       strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "json")),
		CORSOrigins:     parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		PasswordDigest:  strings.ToLower(fallback(os.Getenv("PASSWORD_DIGEST"), "md5")),
		DBMaxConns:      int32(atoi(fallback(os.Getenv("DB_MAX_CONNS"), "10"))),
		ShutdownTimeout: time.Duration(atoi(fallback(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"), "15"))) * time.Second,
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}

func validate(cfg Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// atoi returns 0 for malformed numbers so validation reports them.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
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
