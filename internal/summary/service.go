package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"familyweather/internal/dayparts"
	"familyweather/internal/forecast"
	"familyweather/internal/icons"
	"familyweather/internal/llm"
)

var validate = validator.New()

// Generator is the slice of the llm client the summarizer needs.
type Generator interface {
	GenerateJSON(ctx context.Context, opts llm.GenerateOptions, prompt string, schema any) (string, error)
}

// Request carries the four required summarizer inputs.
type Request struct {
	Forecast  forecast.Payload `json:"forecast"`
	DayPart   string           `json:"dayPart" validate:"required"`
	Timezone  string           `json:"timezone" validate:"required"`
	LocalTime string           `json:"localTime" validate:"required"`
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

// Service is the forecast summarizer.
type Service struct {
	gen  Generator
	opts llm.GenerateOptions
}

// NewService creates a summarizer using the given model.
func NewService(gen Generator, model string) *Service {
	return &Service{
		gen: gen,
		opts: llm.GenerateOptions{
			Model:           model,
			Temperature:     0.4,
			MaxOutputTokens: 600,
		},
	}
}

// Summarize produces exactly three validated cards, ordered current day-part
// first. The whole response is rejected on any validation failure; partial
// acceptance of individual cards is deliberately not supported.
func (s *Service) Summarize(ctx context.Context, req Request) ([]Card, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current := dayparts.Part(req.DayPart)
	seq := dayparts.Sequence(current)

	raw, err := s.gen.GenerateJSON(ctx, s.opts, buildPrompt(req, seq), responseSchema())
	if err != nil {
		return nil, err
	}

	return parseCards(raw, seq)
}

// cardWire mirrors the schema with pointers so missing fields are
// distinguishable from zero values.
type cardWire struct {
	Label string `json:"label"`
	Range *struct {
		Low  *float64 `json:"low"`
		High *float64 `json:"high"`
	} `json:"range"`
	Icon    []string  `json:"icon"`
	Warning *[]string `json:"warning"`
}

// parseCards validates the model output against the full contract and fails
// closed: one malformed card rejects the batch.
func parseCards(raw string, seq [3]dayparts.Window) ([]Card, error) {
	var wires []cardWire
	if err := json.Unmarshal([]byte(raw), &wires); err != nil {
		return nil, &UnprocessableError{Reason: fmt.Sprintf("not a JSON array of cards: %v", err), Raw: raw}
	}

	if len(wires) != 3 {
		return nil, &UnprocessableError{Reason: fmt.Sprintf("expected exactly 3 cards, got %d", len(wires)), Raw: raw}
	}

	cards := make([]Card, 0, 3)
	for i, w := range wires {
		if !dayparts.Valid(w.Label) {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: label %q is not a day part", i, w.Label), Raw: raw}
		}
		if dayparts.Part(w.Label) != seq[i].Part {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: label %q out of order, expected %q", i, w.Label, seq[i].Part), Raw: raw}
		}
		if w.Range == nil || w.Range.Low == nil || w.Range.High == nil {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: temperature range incomplete", i), Raw: raw}
		}
		if *w.Range.Low > *w.Range.High {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: range low %g above high %g", i, *w.Range.Low, *w.Range.High), Raw: raw}
		}
		if len(w.Icon) < icons.MinPerCard || len(w.Icon) > icons.MaxPerCard {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: %d icons outside %d-%d", i, len(w.Icon), icons.MinPerCard, icons.MaxPerCard), Raw: raw}
		}
		toks := make([]icons.Token, len(w.Icon))
		for j, s := range w.Icon {
			t := icons.Token(s)
			if !icons.Valid(t) {
				return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: icon %q outside the vocabulary", i, s), Raw: raw}
			}
			toks[j] = t
		}
		if w.Warning == nil {
			return nil, &UnprocessableError{Reason: fmt.Sprintf("card %d: warning array missing", i), Raw: raw}
		}

		cards = append(cards, Card{
			Label:   dayparts.Part(w.Label),
			Range:   Range{Low: *w.Range.Low, High: *w.Range.High},
			Icon:    toks,
			Warning: *w.Warning,
		})
	}

	return cards, nil
}
