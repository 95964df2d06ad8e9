package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weatherlog/weatherlog-go/internal/middleware"
	"github.com/weatherlog/weatherlog-go/internal/service"
)

// WeatherHandler handles HTTP requests for weather fetching and history.
type WeatherHandler struct {
	service *service.WeatherService
	errors  errorWriter
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(svc *service.WeatherService, verboseErrors bool) *WeatherHandler {
	return &WeatherHandler{service: svc, errors: errorWriter{verbose: verboseErrors}}
}

// HandleFetch handles GET /api/weather/{locationId}/get requests.
func (h *WeatherHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	obs, err := h.service.FetchAndStore(r.Context(), userID, chi.URLParam(r, "locationId"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: obs, Msg: "Weather data saved successfully"})
}

// HandleCurrent handles GET /api/weather/{locationId}/current requests.
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	snap, err := h.service.CurrentWithForecast(r.Context(), userID, chi.URLParam(r, "locationId"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: snap,
		Msg:  "Current weather and rainfall prediction retrieved and saved successfully",
	})
}

// HandleHistory handles GET /api/weather/{locationId}/history requests.
func (h *WeatherHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	q := r.URL.Query()

	start, err := parseDate("startDate", q.Get("startDate"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}
	end, err := parseDate("endDate", q.Get("endDate"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	history, err := h.service.History(r.Context(), userID, chi.URLParam(r, "locationId"), start, end)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: history, Msg: "Weather history retrieved successfully"})
}

// HandlePurge handles DELETE /api/weather/{locationId}/delete requests.
func (h *WeatherHandler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	before, err := parseDate("beforeDate", r.URL.Query().Get("beforeDate"))
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	result, err := h.service.Purge(r.Context(), userID, chi.URLParam(r, "locationId"), before)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result, Msg: "Weather history deleted successfully"})
}
