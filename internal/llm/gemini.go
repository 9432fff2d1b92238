// Package llm is the client for the Gemini generateContent API. It supports
// constrained JSON generation (responseSchema) and plain-text generation,
// with the same resilience policy as the weather provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"familyweather/internal/upstream"
)

var (
	// ErrNotConfigured is returned when the API key is absent.
	ErrNotConfigured = errors.New("gemini api key is not configured")
	// ErrUnavailable wraps transport-level failures of the model call.
	ErrUnavailable = errors.New("gemini request failed")
	// ErrEmptyOutput is returned when the model answered without usable text.
	ErrEmptyOutput = errors.New("gemini returned no usable output")
)

// GenerateOptions selects the model and generation parameters for one call.
type GenerateOptions struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// Client talks to the Gemini REST API.
type Client struct {
	apiKey      string
	baseURL     string
	callTimeout time.Duration
	httpCfg     upstream.ClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewClient creates a Client. callTimeout bounds the total wait per
// generation, including the single transport retry.
func NewClient(httpClient *http.Client, apiKey string, callTimeout time.Duration) *Client {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     "https://generativelanguage.googleapis.com/v1beta/models",
		callTimeout: callTimeout,
		httpCfg: upstream.ClientConfig{
			Client: httpClient,
			Backoff: upstream.BackoffConfig{
				MaxRetries:      1,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			Limiter: rate.NewLimiter(rate.Limit(2), 4),
		},
		circuit: upstream.NewBreaker("gemini"),
	}
}

type genRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type genContent struct {
	Role  string    `json:"role"`
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   any     `json:"responseSchema,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateJSON runs a schema-constrained generation and returns the model's
// raw JSON text. Structurally invalid output is rejected by the generation
// layer where the schema can express the constraint; anything it cannot
// express is the caller's post-validation problem.
func (c *Client) GenerateJSON(ctx context.Context, opts GenerateOptions, prompt string, schema any) (string, error) {
	return c.generate(ctx, opts, prompt, "application/json", schema)
}

// GenerateText runs an unconstrained plain-text generation.
func (c *Client) GenerateText(ctx context.Context, opts GenerateOptions, prompt string) (string, error) {
	return c.generate(ctx, opts, prompt, "text/plain", nil)
}

func (c *Client) generate(ctx context.Context, opts GenerateOptions, prompt, mimeType string, schema any) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	reqBody := genRequest{
		Contents: []genContent{
			{Role: "user", Parts: []genPart{{Text: prompt}}},
		},
		GenerationConfig: genConfig{
			Temperature:      opts.Temperature,
			MaxOutputTokens:  opts.MaxOutputTokens,
			ResponseMIMEType: mimeType,
			ResponseSchema:   schema,
		},
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding gemini request: %w", err)
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, opts.Model, c.apiKey)
		req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := upstream.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload genResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	text := firstCandidateText(payload)
	text = stripFences(text)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

func firstCandidateText(resp genResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// stripFences removes a wrapping markdown code block. Even under a JSON mime
// type, models occasionally fence their answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
