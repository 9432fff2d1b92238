package summary

import (
	"fmt"
	"strings"

	"familyweather/internal/dayparts"
	"familyweather/internal/icons"
)

// buildPrompt composes the instruction for the constrained generation. The
// three windows come from the day-part sequence; a day rollover is explained
// in prose while the emitted labels stay bare day-part names.
func buildPrompt(req Request, seq [3]dayparts.Window) string {
	var b strings.Builder

	b.WriteString("You are given an hourly weather forecast for a family weather app:\n")
	b.WriteString(string(req.Forecast))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Timezone: %s. Local time: %s. The current day part is %q.\n\n", req.Timezone, req.LocalTime, req.DayPart)

	b.WriteString("Summarize the forecast as exactly three JSON objects, one per window, in this order:\n")
	for i, w := range seq {
		fmt.Fprintf(&b, "%d. %s (use label %q)\n", i+1, w.Label, w.Part)
	}
	if seq[1].Tomorrow || seq[2].Tomorrow {
		b.WriteString("Windows marked \"Tomorrow\" fall on the next calendar day; summarize the forecast hours for that day, but still use the bare label shown above.\n")
	}

	b.WriteString("\nEach object has:\n")
	fmt.Fprintf(&b, "- label: the bare day-part name given above\n")
	fmt.Fprintf(&b, "- range: {low, high} temperature in Celsius for that window, low <= high\n")
	fmt.Fprintf(&b, "- icon: %d-%d icons, ordered most to least dominant, chosen for the comfort- and safety-relevant conditions in that window. Allowed values: %s\n",
		icons.MinPerCard, icons.MaxPerCard, strings.Join(icons.Vocabulary(), ", "))
	fmt.Fprintf(&b, "- warning: short human-readable hazard advisories (empty array when there is nothing to warn about)\n")

	b.WriteString("\nOutput a pure JSON array ONLY. No markdown, no explanation, no wrapping object.")
	return b.String()
}
