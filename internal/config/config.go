package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrDevSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	Env         string        `env:"ENV" envDefault:"development"`
	Store       string        `env:"STORE" envDefault:"mysql"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/weatherlog?parseTime=true&loc=UTC"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`

	OpenWeatherAPIKey  string        `env:"OPENWEATHER_API_KEY"`
	OpenWeatherBaseURL string        `env:"OPENWEATHER_BASE_URL" envDefault:"https://api.openweathermap.org/data/2.5"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	ProviderRPS        float64       `env:"PROVIDER_RPS" envDefault:"1"`
	ProviderBurst      int           `env:"PROVIDER_BURST" envDefault:"10"`

	CORSOrigin    string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
	VerboseErrors bool   `env:"VERBOSE_ERRORS"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment.
// VERBOSE_ERRORS defaults to on outside production when it is not set explicitly.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if _, ok := os.LookupEnv("VERBOSE_ERRORS"); !ok {
		cfg.VerboseErrors = cfg.Env != "production"
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, ErrDevSecretInProduction
	}

	return cfg, nil
}

// SlogLevel converts LogLevel into a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
