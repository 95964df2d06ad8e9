package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/weatherlog/weatherlog-go/internal/model"
)

// ErrLocationNotFound covers both a missing id and an id owned by someone else.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepository handles location persistence. Every query is scoped by owner.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, user_id, name, latitude, longitude, region, country, created_at, updated_at`

// Create inserts a location. The caller assigns loc.ID and loc.UserID.
func (r *LocationRepository) Create(ctx context.Context, loc *model.Location) error {
	query := `INSERT INTO locations (id, user_id, name, latitude, longitude, region, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		loc.ID, loc.UserID, loc.Name, loc.Latitude, loc.Longitude, loc.Region, loc.Country,
		loc.CreatedAt, loc.UpdatedAt,
	)
	return err
}

// ListByOwner returns the owner's locations, oldest first.
func (r *LocationRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Name, &l.Latitude, &l.Longitude,
			&l.Region, &l.Country, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// GetByOwner retrieves a location by id if it belongs to ownerID.
func (r *LocationRepository) GetByOwner(ctx context.Context, ownerID, id string) (*model.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ? AND user_id = ?`

	l := &model.Location{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&l.ID, &l.UserID, &l.Name, &l.Latitude, &l.Longitude,
		&l.Region, &l.Country, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	return l, nil
}

// Update writes the mutable fields of loc, matching on both id and owner.
func (r *LocationRepository) Update(ctx context.Context, loc *model.Location) error {
	query := `UPDATE locations SET name = ?, latitude = ?, longitude = ?, region = ?, country = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		loc.Name, loc.Latitude, loc.Longitude, loc.Region, loc.Country, loc.UpdatedAt,
		loc.ID, loc.UserID,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrLocationNotFound)
}

// Delete removes a location owned by ownerID. Its observations go with it (FK cascade).
func (r *LocationRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM locations WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrLocationNotFound)
}

func expectRows(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
