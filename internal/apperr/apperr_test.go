package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{InvalidInput, http.StatusBadRequest},
		{InvalidCredential, http.StatusUnauthorized},
		{Missing, http.StatusUnauthorized},
		{Malformed, http.StatusUnauthorized},
		{Superseded, http.StatusUnauthorized},
		{Expired, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Upstream, http.StatusInternalServerError},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}

func TestKindOf(t *testing.T) {
	base := New(NotFound, "Location not found")
	wrapped := fmt.Errorf("lookup: %w", base)

	assert.Equal(t, NotFound, KindOf(base))
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(Internal, "Internal server error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.Equal(t, "Location not found", New(NotFound, "Location not found").Error())
}

func TestIsAuth(t *testing.T) {
	assert.True(t, IsAuth(Expired))
	assert.True(t, IsAuth(Superseded))
	assert.False(t, IsAuth(NotFound))
	assert.False(t, IsAuth(Upstream))
}
