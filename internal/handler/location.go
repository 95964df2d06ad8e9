package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weatherlog/weatherlog-go/internal/middleware"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/service"
)

// LocationHandler handles HTTP requests for the caller's locations.
type LocationHandler struct {
	service *service.LocationService
	errors  errorWriter
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(svc *service.LocationService, verboseErrors bool) *LocationHandler {
	return &LocationHandler{service: svc, errors: errorWriter{verbose: verboseErrors}}
}

// HandleList handles GET /api/locations requests.
func (h *LocationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	locations, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: locations, Msg: "Locations retrieved successfully"})
}

// HandleGet handles GET /api/locations/{id} requests.
func (h *LocationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	loc, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: loc, Msg: "Location retrieved successfully"})
}

// HandleCreate handles POST /api/locations requests.
func (h *LocationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req model.CreateLocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	loc, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: loc, Msg: "Location created successfully"})
}

// HandleUpdate handles PATCH /api/locations/{id} requests.
func (h *LocationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req model.UpdateLocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	loc, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: loc, Msg: "Location updated successfully"})
}

// HandleDelete handles DELETE /api/locations/{id} requests.
func (h *LocationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Msg: "Location deleted successfully"})
}
