package forecast

import "context"

// Provider abstracts the upstream hourly-forecast source.
type Provider interface {
	Name() string
	Hourly(ctx context.Context, lat, lng float64, hours int) (Payload, error)
}

// DefaultHours is the hour count requested when the client does not ask for
// a specific window.
const DefaultHours = 24

// MaxHours bounds the requestable window (one week).
const MaxHours = 168
