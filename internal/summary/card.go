// Package summary turns a raw hourly forecast into exactly three structured
// day-part cards via schema-constrained generation, then re-validates the
// model's answer before anything downstream may consume it.
package summary

import (
	"familyweather/internal/dayparts"
	"familyweather/internal/icons"
)

// Range is a temperature span in Celsius with Low <= High.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Card is the summarized weather for one day-part window. Cards are
// immutable once produced; a new forecast yields an entirely new set.
type Card struct {
	Label   dayparts.Part `json:"label"`
	Range   Range         `json:"range"`
	Icon    []icons.Token `json:"icon"`
	Warning []string      `json:"warning"`
}
