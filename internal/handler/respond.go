package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/weatherlog/weatherlog-go/internal/apperr"
)

const maxBodyBytes = 1 << 20 // 1MB

type response struct {
	Data any    `json:"data,omitempty"`
	Msg  string `json:"msg"`
}

type errorBody struct {
	Msg  string `json:"msg"`
	Kind string `json:"kind"`
	Data any    `json:"data,omitempty"`
}

// errorWriter renders service errors. With verbose set, the body also carries
// the provider payload or the underlying error text.
type errorWriter struct {
	verbose bool
}

func (ew errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	body := errorBody{Msg: "Internal server error", Kind: kind.String()}

	var e *apperr.Error
	if errors.As(err, &e) {
		body.Msg = e.Msg
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "kind", kind.String(), "error", err)
	}

	if ew.verbose {
		switch {
		case e != nil && e.Detail != nil:
			body.Data = e.Detail
		case e != nil && e.Err != nil:
			body.Data = e.Err.Error()
		case e == nil:
			body.Data = err.Error()
		}
	} else if e != nil && kind == apperr.InvalidInput && e.Detail != nil {
		// field errors are for the client, not diagnostics
		body.Data = e.Detail
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Wrap(apperr.InvalidInput, "Request body too large", err)
		}
		return apperr.Wrap(apperr.InvalidInput, "Invalid request body", err)
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (midnight UTC).
// An empty value yields nil.
func parseDate(param, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "Invalid "+param, err)
	}
	return &t, nil
}
