package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenWeatherClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenWeatherClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestCurrent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "38.72", q.Get("lat"))
		assert.Equal(t, "-9.14", q.Get("lon"))
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		fmt.Fprint(w, `{"main":{"temp":21.5,"feels_like":20.9,"humidity":60},"wind":{"speed":3.1},"weather":[{"description":"light rain"}]}`)
	})

	cond, err := client.Current(context.Background(), 38.72, -9.14)
	require.NoError(t, err)
	assert.Equal(t, Conditions{Temperature: 21.5, FeelsLike: 20.9, Humidity: 60, WindSpeed: 3.1, Description: "light rain"}, cond)
}

func TestCurrentMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>`},
		{name: "missing main", body: `{"wind":{"speed":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			_, err := client.Current(context.Background(), 1, 1)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestForecast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		fmt.Fprint(w, `{"list":[{"rain":{"3h":0.5}},{},{"rain":{}}]}`)
	})

	entries, err := client.Forecast(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.NotNil(t, entries[0].Rain3h)
	assert.Equal(t, 0.5, *entries[0].Rain3h)
	assert.Nil(t, entries[1].Rain3h)
	assert.Nil(t, entries[2].Rain3h)
}

func TestForecastMissingList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cod":"200"}`)
	})

	_, err := client.Forecast(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestProviderErrorCarriesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"cod":401,"message":"Invalid API key"}`)
	})

	_, err := client.Current(context.Background(), 1, 2)
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusUnauthorized, pe.Status)
	assert.JSONEq(t, `{"cod":401,"message":"Invalid API key"}`, string(pe.Payload))
}

func TestProviderErrorWithoutJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Current(context.Background(), 1, 2)
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadGateway, pe.Status)
	assert.Nil(t, pe.Payload)
}

func TestNoRetryAndCircuitOpens(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 1; i <= 5; i++ {
		_, err := client.Current(context.Background(), 1, 2)
		require.Error(t, err)
		assert.Equal(t, int32(i), calls.Load(), "each call is a single attempt")
	}

	_, err := client.Current(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}

func TestClientErrorsDoNotTripCircuit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "city not found"})
	})

	for i := 0; i < 10; i++ {
		_, err := client.Current(context.Background(), 1, 2)
		var pe *ProviderError
		require.True(t, errors.As(err, &pe))
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewOpenWeatherClient(ClientConfig{BaseURL: baseURL, Timeout: time.Second})
	_, err := client.Current(context.Background(), 1, 2)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "status"))
}

func TestPacingHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"list":[]}`)
	})
	client.limiter.SetLimit(0.001)
	client.limiter.SetBurst(1)

	_, err := client.Forecast(context.Background(), 1, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Forecast(ctx, 1, 2)
	assert.Error(t, err)
}
