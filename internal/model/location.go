package model

import (
	"strings"
	"time"
)

// Location is a named coordinate owned by exactly one user.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Region    string    `json:"region,omitempty"`
	Country   string    `json:"country,omitempty"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName joins name, region and country with ", ", skipping empty parts.
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// CreateLocationRequest is the body of POST /api/locations.
// required on a float rejects zero as well as absence.
type CreateLocationRequest struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
}

// UpdateLocationRequest is the body of PATCH /api/locations/{id}. Nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Region    *string  `json:"region"`
	Country   *string  `json:"country"`
}

// Apply copies the set fields of req onto l.
func (req UpdateLocationRequest) Apply(l *Location) {
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if req.Region != nil {
		l.Region = *req.Region
	}
	if req.Country != nil {
		l.Country = *req.Country
	}
}
