// Package advisory produces the free-text clothing and preparation guidance
// for the next ~12 hours. Unlike the summarizer it is instruction-constrained
// only: the output is plain text and is never parsed structurally downstream.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"familyweather/internal/dayparts"
	"familyweather/internal/forecast"
	"familyweather/internal/llm"
)

var validate = validator.New()

// ErrInvalidInput marks request errors detected before any model call.
var ErrInvalidInput = errors.New("invalid advisory request")

// ErrEmptyAdvice means the model answered without usable text.
var ErrEmptyAdvice = errors.New("model produced no advisory text")

// Generator is the slice of the llm client the advisory needs.
type Generator interface {
	GenerateText(ctx context.Context, opts llm.GenerateOptions, prompt string) (string, error)
}

// Request carries the advisory inputs. FamilyContext is optional free text
// owned by the user; everything else is required.
type Request struct {
	Forecast      forecast.Payload `json:"forecast"`
	DayPart       string           `json:"dayPart" validate:"required"`
	Timezone      string           `json:"timezone" validate:"required"`
	LocalTime     string           `json:"localTime" validate:"required"`
	FamilyContext string           `json:"familyContext"`
}

// Validate rejects missing or malformed inputs before any model call.
func (r Request) Validate() error {
	if r.Forecast.Empty() {
		return fmt.Errorf("%w: missing forecast", ErrInvalidInput)
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !dayparts.Valid(r.DayPart) {
		return fmt.Errorf("%w: dayPart must be one of: morning, afternoon, evening", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, r.Timezone)
	}
	if _, err := time.Parse(time.RFC3339, r.LocalTime); err != nil {
		return fmt.Errorf("%w: localTime must be RFC3339", ErrInvalidInput)
	}
	return nil
}

// Service generates advisories. Best-effort by contract: beyond the
// transport-level retry in the llm client, failures are surfaced, not
// retried.
type Service struct {
	gen  Generator
	opts llm.GenerateOptions
}

func NewService(gen Generator, model string) *Service {
	return &Service{
		gen: gen,
		opts: llm.GenerateOptions{
			Model:           model,
			Temperature:     0.5,
			MaxOutputTokens: 512,
		},
	}
}

// Advise returns 1-2 short paragraphs of plain-text guidance.
func (s *Service) Advise(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	text, err := s.gen.GenerateText(ctx, s.opts, buildPrompt(req))
	if err != nil {
		if errors.Is(err, llm.ErrEmptyOutput) {
			return "", ErrEmptyAdvice
		}
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyAdvice
	}
	return text, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You will be given weather data and a brief description of the user's family and clothing preferences.\n\n")
	b.WriteString("ONLY output specific, actionable recommendations on what to wear and how to prepare for the weather for the next ~12 hours (the current and next two day parts).\n")
	b.WriteString("- Focus on clothing choices: long vs short sleeves, whether a jacket is needed, whether rubber boots and rain gear are a good idea, or whether going out should be avoided entirely.\n")
	b.WriteString("- Pay special attention to advice for children and day programs like daycare or school, such as packing extra clothes for the afternoon when the weather is expected to shift.\n")
	b.WriteString("- Highlight important changes between morning, afternoon, and evening.\n\n")

	b.WriteString("Inputs:\n")
	fmt.Fprintf(&b, "- forecast: %s\n", string(req.Forecast))
	fmt.Fprintf(&b, "- current dayPart: %q\n", req.DayPart)
	fmt.Fprintf(&b, "- timezone: %s\n", req.Timezone)
	fmt.Fprintf(&b, "- local time: %s\n", req.LocalTime)
	if fam := strings.TrimSpace(req.FamilyContext); fam != "" {
		fmt.Fprintf(&b, "- family/preferences: %s\n", fam)
	}

	b.WriteString("\nRESPONSE FORMAT:\n")
	b.WriteString("- Write 1-2 short paragraphs of actionable advice (no markdown, no JSON, just plain text).\n")
	b.WriteString("- Do NOT explain the weather in detail; focus on what to wear or pack and recommended actions.\n")
	return b.String()
}
