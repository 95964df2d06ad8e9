package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/weatherlog/weatherlog-go/internal/model"
)

// ObservationRepository handles the append-only weather observation history.
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new ObservationRepository.
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Create appends an observation. The caller assigns obs.ID and obs.RecordedAt.
func (r *ObservationRepository) Create(ctx context.Context, obs *model.Observation) error {
	query := `INSERT INTO weather_observations (id, location_id, temperature, humidity, wind_speed, rainfall, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		obs.ID, obs.LocationID, obs.Temperature, obs.Humidity, obs.WindSpeed, obs.RainFall, obs.RecordedAt,
	)
	return err
}

// ListByLocation returns observations for a location, newest first.
// A nil window returns the full history.
func (r *ObservationRepository) ListByLocation(ctx context.Context, locationID string, window *model.TimeRange) ([]model.Observation, error) {
	query := `SELECT id, location_id, temperature, humidity, wind_speed, rainfall, recorded_at
		FROM weather_observations WHERE location_id = ?`
	args := []any{locationID}

	if window != nil {
		query += ` AND recorded_at >= ? AND recorded_at <= ?`
		args = append(args, window.From, window.To)
	}
	query += ` ORDER BY recorded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []model.Observation
	for rows.Next() {
		var o model.Observation
		if err := rows.Scan(
			&o.ID, &o.LocationID, &o.Temperature, &o.Humidity, &o.WindSpeed, &o.RainFall, &o.RecordedAt,
		); err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}

	return observations, rows.Err()
}

// DeleteByLocation removes observations recorded strictly before `before`,
// or all of the location's observations when before is nil.
func (r *ObservationRepository) DeleteByLocation(ctx context.Context, locationID string, before *time.Time) (int64, error) {
	query := `DELETE FROM weather_observations WHERE location_id = ?`
	args := []any{locationID}

	if before != nil {
		query += ` AND recorded_at < ?`
		args = append(args, *before)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
