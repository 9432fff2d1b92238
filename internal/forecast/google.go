package forecast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"familyweather/internal/upstream"
)

// ErrNotConfigured is returned when the Google Weather API key is absent.
// It maps to a configuration error, not an upstream failure.
var ErrNotConfigured = errors.New("google weather api key is not configured")

// ErrUpstream wraps failures of the weather provider itself.
var ErrUpstream = errors.New("weather provider request failed")

// GoogleProvider fetches hourly forecasts from the Google Weather API.
type GoogleProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg upstream.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewGoogleProvider(client *http.Client, apiKey string) *GoogleProvider {
	return &GoogleProvider{
		name:    "google-weather",
		apiKey:  apiKey,
		baseURL: "https://weatherapi.googleapis.com/v1/hourly",
		httpCfg: upstream.ClientConfig{
			Client: client,
			Backoff: upstream.BackoffConfig{
				MaxRetries:      1,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			Limiter: rate.NewLimiter(rate.Limit(5), 5),
		},
		circuit: upstream.NewBreaker("google-weather"),
	}
}

func (p *GoogleProvider) Name() string {
	return p.name
}

// Hourly returns the raw hourly forecast for the coordinate. The response
// body is returned verbatim as an opaque payload.
func (p *GoogleProvider) Hourly(ctx context.Context, lat, lng float64, hours int) (Payload, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if hours <= 0 {
		hours = DefaultHours
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("location.lat", fmt.Sprintf("%f", lat))
		values.Set("location.lng", fmt.Sprintf("%f", lng))
		values.Set("hours", fmt.Sprintf("%d", hours))
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := upstream.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	payload := Payload(body)
	if payload.Empty() {
		return nil, fmt.Errorf("%w: empty response body", ErrUpstream)
	}
	return payload, nil
}
