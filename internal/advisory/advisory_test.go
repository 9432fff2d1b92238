package advisory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"familyweather/internal/forecast"
	"familyweather/internal/llm"
)

type fakeGenerator struct {
	output string
	err    error
	calls  int
	prompt string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, opts llm.GenerateOptions, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func validRequest() Request {
	return Request{
		Forecast:  forecast.Payload(`{"hours":[{"temperature":4,"precipitationChance":0.8}]}`),
		DayPart:   "morning",
		Timezone:  "UTC",
		LocalTime: "2024-01-01T08:00:00Z",
	}
}

func TestAdviseHappyPath(t *testing.T) {
	gen := &fakeGenerator{output: "  Warm jackets for everyone this morning.\n"}
	svc := NewService(gen, "gemini-2.0-flash")

	got, err := svc.Advise(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Warm jackets for everyone this morning." {
		t.Fatalf("advice not trimmed: %q", got)
	}
}

func TestAdviseRejectsMissingInputsBeforeModelCall(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing forecast", func(r *Request) { r.Forecast = nil }},
		{"null forecast", func(r *Request) { r.Forecast = forecast.Payload("null") }},
		{"missing dayPart", func(r *Request) { r.DayPart = "" }},
		{"invalid dayPart", func(r *Request) { r.DayPart = "noon" }},
		{"bad timezone", func(r *Request) { r.Timezone = "Not/AZone" }},
		{"bad localTime", func(r *Request) { r.LocalTime = "today" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{output: "advice"}
			svc := NewService(gen, "m")

			req := validRequest()
			tc.mutate(&req)
			if _, err := svc.Advise(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if gen.calls != 0 {
				t.Fatal("model must not be invoked for invalid input")
			}
		})
	}
}

func TestAdviseFamilyContextOnlyWhenPresent(t *testing.T) {
	gen := &fakeGenerator{output: "advice"}
	svc := NewService(gen, "m")

	req := validRequest()
	req.FamilyContext = "two kids in daycare, one hates hats"
	if _, err := svc.Advise(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.prompt, "two kids in daycare") {
		t.Error("family context missing from prompt")
	}

	req.FamilyContext = "   "
	if _, err := svc.Advise(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gen.prompt, "family/preferences") {
		t.Error("blank family context must be omitted from the prompt entirely")
	}
}

func TestAdviseEmptyModelOutput(t *testing.T) {
	svc := NewService(&fakeGenerator{err: llm.ErrEmptyOutput}, "m")
	if _, err := svc.Advise(context.Background(), validRequest()); !errors.Is(err, ErrEmptyAdvice) {
		t.Fatalf("expected ErrEmptyAdvice, got %v", err)
	}

	svc = NewService(&fakeGenerator{output: "   \n  "}, "m")
	if _, err := svc.Advise(context.Background(), validRequest()); !errors.Is(err, ErrEmptyAdvice) {
		t.Fatalf("expected ErrEmptyAdvice for blank output, got %v", err)
	}
}

func TestAdvisePropagatesUpstreamError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: llm.ErrUnavailable}, "m")
	if _, err := svc.Advise(context.Background(), validRequest()); !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
