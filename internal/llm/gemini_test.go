package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), "test-key", 5*time.Second)
	c.baseURL = srv.URL
	c.httpCfg.Backoff.InitialInterval = time.Millisecond
	return c
}

func TestGenerateJSONSendsSchema(t *testing.T) {
	var captured genRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(candidateResponse(`[{"ok":true}]`)))
	})

	schema := map[string]any{"type": "ARRAY"}
	opts := GenerateOptions{Model: "gemini-1.5-flash-latest", Temperature: 0.4, MaxOutputTokens: 600}
	out, err := c.GenerateJSON(context.Background(), opts, "summarize", schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `[{"ok":true}]` {
		t.Fatalf("unexpected output: %q", out)
	}

	if captured.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("responseMimeType = %q, want application/json", captured.GenerationConfig.ResponseMIMEType)
	}
	if captured.GenerationConfig.ResponseSchema == nil {
		t.Error("responseSchema missing from request")
	}
	if captured.GenerationConfig.Temperature != 0.4 || captured.GenerationConfig.MaxOutputTokens != 600 {
		t.Errorf("generation config not forwarded: %+v", captured.GenerationConfig)
	}
}

func TestGenerateTextOmitsSchema(t *testing.T) {
	var captured genRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(candidateResponse("Wear a raincoat.")))
	})

	out, err := c.GenerateText(context.Background(), GenerateOptions{Model: "gemini-2.0-flash"}, "advise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Wear a raincoat." {
		t.Fatalf("unexpected output: %q", out)
	}
	if captured.GenerationConfig.ResponseMIMEType != "text/plain" {
		t.Errorf("responseMimeType = %q, want text/plain", captured.GenerationConfig.ResponseMIMEType)
	}
	if captured.GenerationConfig.ResponseSchema != nil {
		t.Error("plain-text generation must not carry a responseSchema")
	}
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("```json\n[1,2,3]\n```")))
	})

	out, err := c.GenerateJSON(context.Background(), GenerateOptions{Model: "m"}, "p", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[1,2,3]" {
		t.Fatalf("fences not stripped: %q", out)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.GenerateText(context.Background(), GenerateOptions{Model: "m"}, "p")
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GenerateText(context.Background(), GenerateOptions{Model: "m"}, "p")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerateRequiresKey(t *testing.T) {
	c := NewClient(http.DefaultClient, "", time.Second)
	_, err := c.GenerateText(context.Background(), GenerateOptions{Model: "m"}, "p")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
