package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
	"github.com/weatherlog/weatherlog-go/internal/crypto"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/repository"
	"github.com/weatherlog/weatherlog-go/internal/weather"
)

const testSecret = "test-secret"

func newTestHasher() *crypto.PasswordHasher {
	return crypto.NewPasswordHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func newTestAuthService(store *repository.MemoryStore) *AuthService {
	return NewAuthService(store.Users(), newTestHasher(), testSecret, time.Hour)
}

func registerAndLogin(t *testing.T, svc *AuthService, name, email string) model.LoginResponse {
	t.Helper()
	ctx := context.Background()

	_, err := svc.Register(ctx, model.CreateUserRequest{Name: name, Email: email, Password: "secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{Email: email, Password: "secret"})
	require.NoError(t, err)
	return resp
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "error: %v", err)
}

// stubProvider is a WeatherProvider returning canned data.
type stubProvider struct {
	mu          sync.Mutex
	conditions  weather.Conditions
	forecast    []weather.ForecastEntry
	currentErr  error
	forecastErr error
	calls       []string
}

func (p *stubProvider) Current(_ context.Context, lat, lon float64) (weather.Conditions, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "current")
	return p.conditions, p.currentErr
}

func (p *stubProvider) Forecast(_ context.Context, lat, lon float64) ([]weather.ForecastEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "forecast")
	return p.forecast, p.forecastErr
}
