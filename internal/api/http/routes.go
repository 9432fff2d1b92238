// Package httpapi wires the relay endpoints into the Fiber app: the hourly
// forecast fetch, the two AI-backed transformations, the location fallback,
// and the persisted family settings.
package httpapi

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"familyweather/internal/advisory"
	"familyweather/internal/dayparts"
	"familyweather/internal/derived"
	"familyweather/internal/forecast"
	"familyweather/internal/llm"
	"familyweather/internal/location"
	"familyweather/internal/settings"
	"familyweather/internal/summary"
)

var validate = validator.New()

// ForecastFetcher is the slice of forecast.Service the handlers need.
type ForecastFetcher interface {
	Hourly(ctx context.Context, lat, lng float64, hours int) (forecast.Payload, error)
}

// Summarizer is the slice of summary.Service the handlers need.
type Summarizer interface {
	Summarize(ctx context.Context, req summary.Request) ([]summary.Card, error)
}

// Adviser is the slice of advisory.Service the handlers need.
type Adviser interface {
	Advise(ctx context.Context, req advisory.Request) (string, error)
}

// Resolver is the slice of location.Resolver the handlers need.
type Resolver interface {
	Resolve(ctx context.Context, city, country string) (location.Coordinate, error)
}

// Deps collects the handler dependencies.
type Deps struct {
	Forecast ForecastFetcher
	Summary  Summarizer
	Advisory Adviser
	Derived  *derived.Cache
	Settings settings.Store
	Location Resolver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Post("/weather/hourly", d.handleHourly)
	v1.Post("/weather/summary", d.handleSummary)
	v1.Post("/weather/tips", d.handleTips)
	v1.Get("/location/resolve", d.handleResolveLocation)
	v1.Get("/settings/family", d.handleGetFamily)
	v1.Put("/settings/family", d.handlePutFamily)
}

// hourlyBody is the forecast relay request. Pointers distinguish a missing
// coordinate from a legitimate zero.
type hourlyBody struct {
	Lat   *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng   *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Hours int      `json:"hours" validate:"omitempty,min=1,max=168"`
}

func (d Deps) handleHourly(c *fiber.Ctx) error {
	var body hourlyBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := validate.Struct(body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid or missing 'lat' and 'lng' in request body", err.Error())
	}

	hours := body.Hours
	if hours == 0 {
		hours = forecast.DefaultHours
	}

	payload, err := d.Forecast.Hourly(c.UserContext(), *body.Lat, *body.Lng, hours)
	if err != nil {
		return mapServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// summaryBody carries the summarizer inputs plus the client's coordinates,
// used only for derived-result cache keying.
type summaryBody struct {
	summary.Request
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (d Deps) handleSummary(c *fiber.Ctx) error {
	var body summaryBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := body.Request.Validate(); err != nil {
		return mapServiceError(c, err)
	}

	ctx := c.UserContext()
	key := cacheKey("summary", body.DayPart, body.Timezone, "", body.Lat, body.Lng)

	val, _, err := d.Derived.Do(ctx, key, func() (any, error) {
		return d.Summary.Summarize(ctx, body.Request)
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(val)
}

// tipsBody mirrors summaryBody for the advisory relay.
type tipsBody struct {
	advisory.Request
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (d Deps) handleTips(c *fiber.Ctx) error {
	var body tipsBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid JSON body", err.Error())
	}

	ctx := c.UserContext()

	// No familyContext in the request falls back to the stored one.
	if body.FamilyContext == "" && d.Settings != nil {
		if stored, err := d.Settings.Family(ctx); err == nil {
			body.FamilyContext = stored
		}
	}

	if err := body.Request.Validate(); err != nil {
		return mapServiceError(c, err)
	}

	key := cacheKey("tips", body.DayPart, body.Timezone, body.FamilyContext, body.Lat, body.Lng)

	val, _, err := d.Derived.Do(ctx, key, func() (any, error) {
		return d.Advisory.Advise(ctx, body.Request)
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	text, _ := val.(string)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(text)
}

func (d Deps) handleResolveLocation(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return respondError(c, fiber.StatusBadRequest, "city query parameter is required", "")
	}

	coord, err := d.Location.Resolve(c.UserContext(), city, c.Query("country"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(coord)
}

type familyBody struct {
	Family string `json:"family"`
}

func (d Deps) handleGetFamily(c *fiber.Ctx) error {
	value, err := d.Settings.Family(c.UserContext())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(familyBody{Family: value})
}

func (d Deps) handlePutFamily(c *fiber.Ctx) error {
	var body familyBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := d.Settings.SetFamily(c.UserContext(), body.Family); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(body)
}

func cacheKey(kind, dayPart, timezone, family string, lat, lng *float64) string {
	key := derived.Key{
		Kind:     kind,
		DayPart:  dayparts.Part(dayPart),
		Timezone: timezone,
		Family:   family,
	}
	if lat != nil && lng != nil {
		key.HasCoords = true
		key.Lat = *lat
		key.Lng = *lng
	}
	return key.String()
}

// errorEnvelope is the JSON error body shared by every relay endpoint.
type errorEnvelope struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id"`
}

func respondError(c *fiber.Ctx, status int, message, detail string) error {
	id := uuid.NewString()
	log.Printf("api: %s %s -> %d %s request_id=%s detail=%s", c.Method(), c.Path(), status, message, id, detail)
	return c.Status(status).JSON(errorEnvelope{Error: message, Detail: detail, RequestID: id})
}

// mapServiceError translates the error taxonomy to HTTP statuses: input
// errors 400, configuration 500, upstream and bad-model-output 502. The two
// 502 classes keep distinct messages so operators can tell "model
// unreachable" apart from "model answered badly".
func mapServiceError(c *fiber.Ctx, err error) error {
	var unproc *summary.UnprocessableError

	switch {
	case errors.Is(err, summary.ErrInvalidInput), errors.Is(err, advisory.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "missing or invalid request field(s)", err.Error())

	case errors.As(err, &unproc):
		log.Printf("api: unprocessable model output: %s raw=%s", unproc.Reason, unproc.Raw)
		return respondError(c, fiber.StatusBadGateway, "AI output parse/validation error", unproc.Reason)

	case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, forecast.ErrNotConfigured):
		return respondError(c, fiber.StatusInternalServerError, "service is not configured", err.Error())

	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrEmptyOutput), errors.Is(err, advisory.ErrEmptyAdvice):
		return respondError(c, fiber.StatusBadGateway, "generative model request failed", err.Error())

	case errors.Is(err, forecast.ErrUpstream):
		return respondError(c, fiber.StatusBadGateway, "failed to fetch weather data", err.Error())

	case errors.Is(err, location.ErrUnavailable):
		return respondError(c, fiber.StatusBadGateway, "location unavailable", err.Error())

	default:
		return respondError(c, fiber.StatusInternalServerError, "internal server error", err.Error())
	}
}
