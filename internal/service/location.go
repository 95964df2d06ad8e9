package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/repository"
)

var (
	ErrLocationNotFound = apperr.New(apperr.NotFound, "Location not found")
	ErrNoLocations      = apperr.New(apperr.NotFound, "User does not have a location")
)

// LocationService manages locations. Every operation is scoped to the owner;
// another user's location is reported exactly like a missing one.
type LocationService struct {
	repo LocationStore
	now  func() time.Time
}

// NewLocationService creates a new LocationService.
func NewLocationService(repo LocationStore) *LocationService {
	return &LocationService{repo: repo, now: time.Now}
}

func (s *LocationService) Create(ctx context.Context, ownerID string, req model.CreateLocationRequest) (model.Location, error) {
	if err := validateRequest(req); err != nil {
		return model.Location{}, err
	}

	now := s.now().UTC()
	loc := model.Location{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Region:    req.Region,
		Country:   req.Country,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &loc); err != nil {
		return model.Location{}, internalError(err)
	}
	return loc, nil
}

// List returns the owner's locations; having none is reported as NotFound.
func (s *LocationService) List(ctx context.Context, ownerID string) ([]model.Location, error) {
	locations, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, internalError(err)
	}
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	return locations, nil
}

func (s *LocationService) Get(ctx context.Context, ownerID, id string) (model.Location, error) {
	loc, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return model.Location{}, mapLocationError(err)
	}
	return *loc, nil
}

// Update applies a partial update; fields absent from req keep their value.
func (s *LocationService) Update(ctx context.Context, ownerID, id string, req model.UpdateLocationRequest) (model.Location, error) {
	if err := validateRequest(req); err != nil {
		return model.Location{}, err
	}

	loc, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return model.Location{}, mapLocationError(err)
	}

	req.Apply(loc)
	loc.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, loc); err != nil {
		return model.Location{}, mapLocationError(err)
	}
	return *loc, nil
}

func (s *LocationService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return mapLocationError(err)
	}
	return nil
}

func mapLocationError(err error) error {
	if errors.Is(err, repository.ErrLocationNotFound) {
		return ErrLocationNotFound
	}
	return internalError(err)
}
