package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/repository"
)

func TestCreateLocationValidation(t *testing.T) {
	svc := NewLocationService(repository.NewMemoryStore().Locations())

	tests := []struct {
		name string
		req  model.CreateLocationRequest
	}{
		{name: "missing name", req: model.CreateLocationRequest{Latitude: 10, Longitude: 10}},
		{name: "zero latitude", req: model.CreateLocationRequest{Name: "Equator", Latitude: 0, Longitude: 10}},
		{name: "zero longitude", req: model.CreateLocationRequest{Name: "Greenwich", Latitude: 51.47, Longitude: 0}},
		{name: "latitude out of range", req: model.CreateLocationRequest{Name: "x", Latitude: 91, Longitude: 10}},
		{name: "longitude out of range", req: model.CreateLocationRequest{Name: "x", Latitude: 10, Longitude: -181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner", tt.req)
			requireKind(t, err, apperr.InvalidInput)
		})
	}
}

func TestLocationLifecycle(t *testing.T) {
	svc := NewLocationService(repository.NewMemoryStore().Locations())
	ctx := context.Background()

	_, err := svc.List(ctx, "a")
	requireKind(t, err, apperr.NotFound)

	loc, err := svc.Create(ctx, "a", model.CreateLocationRequest{Name: "Home", Latitude: 38.72, Longitude: -9.14, Country: "PT"})
	require.NoError(t, err)
	assert.NotEmpty(t, loc.ID)
	assert.Equal(t, "a", loc.UserID)

	list, err := svc.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, list, 1)

	name := "Flat"
	updated, err := svc.Update(ctx, "a", loc.ID, model.UpdateLocationRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Flat", updated.Name)
	assert.Equal(t, 38.72, updated.Latitude)
	assert.Equal(t, "PT", updated.Country)

	got, err := svc.Get(ctx, "a", loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat", got.Name)

	require.NoError(t, svc.Delete(ctx, "a", loc.ID))
	_, err = svc.Get(ctx, "a", loc.ID)
	requireKind(t, err, apperr.NotFound)
}

func TestLocationOwnershipIsolation(t *testing.T) {
	svc := NewLocationService(repository.NewMemoryStore().Locations())
	ctx := context.Background()

	loc, err := svc.Create(ctx, "a", model.CreateLocationRequest{Name: "Home", Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "b", loc.ID)
	requireKind(t, err, apperr.NotFound)

	name := "Stolen"
	_, err = svc.Update(ctx, "b", loc.ID, model.UpdateLocationRequest{Name: &name})
	requireKind(t, err, apperr.NotFound)

	err = svc.Delete(ctx, "b", loc.ID)
	requireKind(t, err, apperr.NotFound)

	_, err = svc.Get(ctx, "a", "does-not-exist")
	assert.ErrorIs(t, err, ErrLocationNotFound)

	got, err := svc.Get(ctx, "a", loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Name)
}

func TestUpdateLocationValidation(t *testing.T) {
	svc := NewLocationService(repository.NewMemoryStore().Locations())
	ctx := context.Background()

	loc, err := svc.Create(ctx, "a", model.CreateLocationRequest{Name: "Home", Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	lat := 120.0
	_, err = svc.Update(ctx, "a", loc.ID, model.UpdateLocationRequest{Latitude: &lat})
	requireKind(t, err, apperr.InvalidInput)
}
