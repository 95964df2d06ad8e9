package service

import (
	"context"
	"time"

	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/weather"
)

// UserStore is implemented by repository.UserRepository and repository.MemoryUsers.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	SetToken(ctx context.Context, id string, token *string) error
}

// LocationStore is implemented by repository.LocationRepository and repository.MemoryLocations.
type LocationStore interface {
	Create(ctx context.Context, loc *model.Location) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Location, error)
	GetByOwner(ctx context.Context, ownerID, id string) (*model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	Delete(ctx context.Context, ownerID, id string) error
}

// ObservationStore is implemented by repository.ObservationRepository and repository.MemoryObservations.
type ObservationStore interface {
	Create(ctx context.Context, obs *model.Observation) error
	ListByLocation(ctx context.Context, locationID string, window *model.TimeRange) ([]model.Observation, error)
	DeleteByLocation(ctx context.Context, locationID string, before *time.Time) (int64, error)
}

// WeatherProvider is implemented by weather.OpenWeatherClient.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (weather.Conditions, error)
	Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastEntry, error)
}
