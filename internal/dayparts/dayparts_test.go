package dayparts

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestResolveBoundaries(t *testing.T) {
	cases := []struct {
		hour, min int
		want      Part
	}{
		{0, 0, Morning},
		{11, 59, Morning},
		{12, 0, Afternoon},
		{17, 59, Afternoon},
		{18, 0, Evening},
		{23, 59, Evening},
	}
	for _, tc := range cases {
		if got := Resolve(at(tc.hour, tc.min)); got != tc.want {
			t.Errorf("Resolve(%02d:%02d) = %q, want %q", tc.hour, tc.min, got, tc.want)
		}
	}
}

func TestNextTwo(t *testing.T) {
	cases := []struct {
		in            Part
		first, second Part
	}{
		{Morning, Afternoon, Evening},
		{Afternoon, Evening, Morning},
		{Evening, Morning, Afternoon},
	}
	for _, tc := range cases {
		first, second := NextTwo(tc.in)
		if first != tc.first || second != tc.second {
			t.Errorf("NextTwo(%q) = (%q, %q), want (%q, %q)", tc.in, first, second, tc.first, tc.second)
		}
	}
}

func TestSequenceRollover(t *testing.T) {
	seq := Sequence(Evening)

	wantParts := [3]Part{Evening, Morning, Afternoon}
	wantLabels := [3]string{"This evening", "Tomorrow morning", "Tomorrow afternoon"}
	for i, w := range seq {
		if w.Part != wantParts[i] {
			t.Errorf("window %d part = %q, want %q", i, w.Part, wantParts[i])
		}
		if w.Label != wantLabels[i] {
			t.Errorf("window %d label = %q, want %q", i, w.Label, wantLabels[i])
		}
	}
	if seq[0].Tomorrow {
		t.Error("current window must not be marked tomorrow")
	}
	if !seq[1].Tomorrow || !seq[2].Tomorrow {
		t.Error("windows after an evening rollover must be marked tomorrow")
	}
}

func TestSequenceNoRollover(t *testing.T) {
	seq := Sequence(Morning)
	wantLabels := [3]string{"This morning", "This afternoon", "This evening"}
	for i, w := range seq {
		if w.Label != wantLabels[i] {
			t.Errorf("window %d label = %q, want %q", i, w.Label, wantLabels[i])
		}
		if w.Tomorrow {
			t.Errorf("window %d unexpectedly marked tomorrow", i)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{"morning", "afternoon", "evening"} {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false", s)
		}
	}
	for _, s := range []string{"", "noon", "night", "Morning"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true", s)
		}
	}
}
