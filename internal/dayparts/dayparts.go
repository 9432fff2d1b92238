package dayparts

import "time"

// Part is one of the three fixed segments of a day used as the unit of
// weather summarization.
type Part string

const (
	Morning   Part = "morning"
	Afternoon Part = "afternoon"
	Evening   Part = "evening"
)

// All lists the parts in their within-day order.
var All = []Part{Morning, Afternoon, Evening}

// Valid reports whether s is one of the three canonical day-part names.
func Valid(s string) bool {
	switch Part(s) {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// Resolve maps a local time to its day part:
// hour < 12 morning, 12-17 afternoon, 18-23 evening.
func Resolve(t time.Time) Part {
	h := t.Hour()
	if h < 12 {
		return Morning
	}
	if h < 18 {
		return Afternoon
	}
	return Evening
}

// Next returns the day part following p in cyclic order and whether the
// step crosses into the next day.
func Next(p Part) (Part, bool) {
	switch p {
	case Morning:
		return Afternoon, false
	case Afternoon:
		return Evening, false
	default:
		return Morning, true
	}
}

// NextTwo returns the two day parts following p in cyclic order
// morning -> afternoon -> evening -> morning (next day).
func NextTwo(p Part) (Part, Part) {
	first, _ := Next(p)
	second, _ := Next(first)
	return first, second
}

// Window pairs a day part with the prose label used when instructing the
// summarizer. Day rollover shows up only in the label ("Tomorrow morning"),
// never in Part.
type Window struct {
	Part     Part
	Label    string
	Tomorrow bool
}

// Sequence returns the current window and the two that follow it.
func Sequence(current Part) [3]Window {
	var seq [3]Window
	p := current
	tomorrow := false
	for i := range seq {
		seq[i] = Window{Part: p, Label: label(p, tomorrow), Tomorrow: tomorrow}
		var rolled bool
		p, rolled = Next(p)
		if rolled {
			tomorrow = true
		}
	}
	return seq
}

func label(p Part, tomorrow bool) string {
	day := "This"
	if tomorrow {
		day = "Tomorrow"
	}
	switch p {
	case Morning:
		return day + " morning"
	case Afternoon:
		return day + " afternoon"
	default:
		return day + " evening"
	}
}
