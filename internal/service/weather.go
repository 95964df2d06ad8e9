package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/weather"
)

// WeatherService fetches weather for a user's locations and keeps the
// observation history.
type WeatherService struct {
	locations    LocationStore
	observations ObservationStore
	provider     WeatherProvider
	now          func() time.Time
}

// NewWeatherService creates a new WeatherService.
func NewWeatherService(locations LocationStore, observations ObservationStore, provider WeatherProvider) *WeatherService {
	return &WeatherService{
		locations:    locations,
		observations: observations,
		provider:     provider,
		now:          time.Now,
	}
}

// FetchAndStore records the current conditions at a location.
func (s *WeatherService) FetchAndStore(ctx context.Context, ownerID, locationID string) (model.ObservationResponse, error) {
	loc, err := s.location(ctx, ownerID, locationID)
	if err != nil {
		return model.ObservationResponse{}, err
	}

	cond, err := s.provider.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return model.ObservationResponse{}, upstreamError(err)
	}

	obs := model.Observation{
		ID:          uuid.NewString(),
		LocationID:  loc.ID,
		Temperature: cond.Temperature,
		Humidity:    cond.Humidity,
		WindSpeed:   cond.WindSpeed,
		RecordedAt:  s.now().UTC(),
	}
	if err := s.observations.Create(ctx, &obs); err != nil {
		return model.ObservationResponse{}, internalError(err)
	}

	return model.ObservationResponse{Observation: obs, Name: loc.Name}, nil
}

// CurrentWithForecast fetches current conditions and the forecast concurrently,
// stores an observation with the derived daily rainfall and returns the snapshot.
// Either call failing fails the whole operation.
func (s *WeatherService) CurrentWithForecast(ctx context.Context, ownerID, locationID string) (model.WeatherSnapshot, error) {
	loc, err := s.location(ctx, ownerID, locationID)
	if err != nil {
		return model.WeatherSnapshot{}, err
	}

	var (
		cond     weather.Conditions
		forecast []weather.ForecastEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cond, err = s.provider.Current(gctx, loc.Latitude, loc.Longitude)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = s.provider.Forecast(gctx, loc.Latitude, loc.Longitude)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.WeatherSnapshot{}, upstreamError(err)
	}

	rainfall := weather.DailyRainfall(forecast)

	obs := model.Observation{
		ID:          uuid.NewString(),
		LocationID:  loc.ID,
		Temperature: cond.Temperature,
		Humidity:    cond.Humidity,
		WindSpeed:   cond.WindSpeed,
		RainFall:    rainfall,
		RecordedAt:  s.now().UTC(),
	}
	if err := s.observations.Create(ctx, &obs); err != nil {
		return model.WeatherSnapshot{}, internalError(err)
	}

	return model.WeatherSnapshot{
		Location:    loc.DisplayName(),
		Temperature: cond.Temperature,
		FeelsLike:   cond.FeelsLike,
		Humidity:    cond.Humidity,
		WindSpeed:   cond.WindSpeed,
		Description: cond.Description,
		RainFall:    rainfall,
	}, nil
}

// History returns the location's observations, newest first. The window is
// applied only when both bounds are set; a single bound is ignored.
func (s *WeatherService) History(ctx context.Context, ownerID, locationID string, start, end *time.Time) ([]model.Observation, error) {
	if _, err := s.location(ctx, ownerID, locationID); err != nil {
		return nil, err
	}

	var window *model.TimeRange
	if start != nil && end != nil {
		window = &model.TimeRange{From: *start, To: *end}
	}

	observations, err := s.observations.ListByLocation(ctx, locationID, window)
	if err != nil {
		return nil, internalError(err)
	}
	if observations == nil {
		observations = []model.Observation{}
	}
	return observations, nil
}

// Purge deletes observations recorded before `before`, or all of them when
// before is nil, and reports how many were removed.
func (s *WeatherService) Purge(ctx context.Context, ownerID, locationID string, before *time.Time) (model.PurgeResponse, error) {
	if _, err := s.location(ctx, ownerID, locationID); err != nil {
		return model.PurgeResponse{}, err
	}

	count, err := s.observations.DeleteByLocation(ctx, locationID, before)
	if err != nil {
		return model.PurgeResponse{}, internalError(err)
	}

	slog.Info("observations purged", "location_id", locationID, "count", count)
	return model.PurgeResponse{Count: count}, nil
}

func (s *WeatherService) location(ctx context.Context, ownerID, locationID string) (*model.Location, error) {
	loc, err := s.locations.GetByOwner(ctx, ownerID, locationID)
	if err != nil {
		return nil, mapLocationError(err)
	}
	return loc, nil
}

// upstreamError tags a provider failure, keeping the provider's error payload
// as the detail when there is one.
func upstreamError(err error) error {
	e := apperr.Wrap(apperr.Upstream, "Failed to fetch weather data", err)

	var pe *weather.ProviderError
	if errors.As(err, &pe) && len(pe.Payload) > 0 {
		e.Detail = pe.Payload
	}
	return e
}
