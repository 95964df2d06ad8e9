// Package weather is the OpenWeatherMap client used to fetch current
// conditions and 5-day forecasts by coordinates.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	ErrUnavailable       = errors.New("weather provider unavailable")
	ErrMalformedResponse = errors.New("malformed weather provider response")
)

// maxBodySize caps how much of a provider response is read.
const maxBodySize = 1 << 20

// ProviderError is a non-2xx answer from the provider. Payload holds the
// provider's JSON error body when it sent one.
type ProviderError struct {
	Status  int
	Payload json.RawMessage
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather provider returned status %d", e.Status)
}

// Conditions is the normalized "current weather" reading.
type Conditions struct {
	Temperature float64
	FeelsLike   float64
	Humidity    float64
	WindSpeed   float64
	Description string
}

// ClientConfig configures an OpenWeatherClient.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RPS and Burst pace outbound calls. RPS <= 0 disables pacing.
	RPS   float64
	Burst int
}

// OpenWeatherClient talks to the OpenWeatherMap 2.5 API. Each call is a single
// attempt: failures are returned to the caller, never retried.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(cfg ClientConfig) *OpenWeatherClient {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &OpenWeatherClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		circuit: cb,
	}
}

// Current fetches the current conditions at the given coordinates.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (Conditions, error) {
	var payload struct {
		Main *struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := c.get(ctx, "/weather", lat, lon, &payload); err != nil {
		return Conditions{}, err
	}
	if payload.Main == nil {
		return Conditions{}, fmt.Errorf("%w: missing main block", ErrMalformedResponse)
	}

	cond := Conditions{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		cond.Description = payload.Weather[0].Description
	}
	return cond, nil
}

// Forecast fetches the 3-hourly forecast at the given coordinates.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	var payload struct {
		List *[]struct {
			Rain *struct {
				ThreeH *float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	if err := c.get(ctx, "/forecast", lat, lon, &payload); err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, fmt.Errorf("%w: missing list", ErrMalformedResponse)
	}

	entries := make([]ForecastEntry, len(*payload.List))
	for i, item := range *payload.List {
		if item.Rain != nil {
			entries[i].Rain3h = item.Rain.ThreeH
		}
	}
	return entries, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path string, lat, lon float64, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	// 4xx answers come back as a result so they do not count against the breaker.
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, newProviderError(resp.StatusCode, body)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return newProviderError(resp.StatusCode, body), nil
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	switch v := result.(type) {
	case *ProviderError:
		return v
	case []byte:
		if err := json.Unmarshal(v, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type %T from circuit breaker", result)
	}
}

func newProviderError(status int, body []byte) *ProviderError {
	pe := &ProviderError{Status: status}
	if json.Valid(body) {
		pe.Payload = json.RawMessage(body)
	}
	return pe
}
