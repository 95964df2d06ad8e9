package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/weatherlog/weatherlog-go/internal/config"
	"github.com/weatherlog/weatherlog-go/internal/crypto"
	"github.com/weatherlog/weatherlog-go/internal/handler"
	"github.com/weatherlog/weatherlog-go/internal/repository"
	"github.com/weatherlog/weatherlog-go/internal/service"
	"github.com/weatherlog/weatherlog-go/internal/weather"
)

type stores struct {
	users        service.UserStore
	locations    service.LocationStore
	observations service.ObservationStore
	db           *sql.DB
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	st, err := openStores(cfg)
	if err != nil {
		slog.Error("failed to open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	if st.db != nil {
		defer st.db.Close()
	}

	if cfg.OpenWeatherAPIKey == "" {
		slog.Warn("OPENWEATHER_API_KEY is not set, weather calls will fail")
	}
	provider := weather.NewOpenWeatherClient(weather.ClientConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		Timeout: cfg.ProviderTimeout,
		RPS:     cfg.ProviderRPS,
		Burst:   cfg.ProviderBurst,
	})

	authService := service.NewAuthService(st.users, crypto.NewPasswordHasher(crypto.DefaultHashParams()), cfg.JWTSecret, cfg.JWTExpiry)
	locationService := service.NewLocationService(st.locations)
	weatherService := service.NewWeatherService(st.locations, st.observations, provider)

	r := handler.NewRouter(handler.RouterConfig{
		Auth:       handler.NewAuthHandler(authService, cfg.VerboseErrors),
		Locations:  handler.NewLocationHandler(locationService, cfg.VerboseErrors),
		Weather:    handler.NewWeatherHandler(weatherService, cfg.VerboseErrors),
		Verifier:   authService,
		CORSOrigin: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return
	}

	slog.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openStores(cfg config.Config) (stores, error) {
	switch cfg.Store {
	case "memory":
		slog.Warn("using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{users: mem.Users(), locations: mem.Locations(), observations: mem.Observations()}, nil
	case "mysql":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:        repository.NewUserRepository(db),
			locations:    repository.NewLocationRepository(db),
			observations: repository.NewObservationRepository(db),
			db:           db,
		}, nil
	default:
		return stores{}, errors.New("unknown STORE " + cfg.Store + ", want mysql or memory")
	}
}
