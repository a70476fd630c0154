package defaults

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBaseBrightnessForDarkness(t *testing.T) {
	tests := []struct {
		name     string
		darkness float64
		want     float64
	}{
		{name: "full day", darkness: 0, want: 0.60},
		{name: "below zero clamps to day", darkness: -0.5, want: 0.60},
		{name: "halfway up the dusk ramp", darkness: 0.35, want: 0.75},
		{name: "dusk peak", darkness: 0.70, want: 0.90},
		{name: "easing toward night", darkness: 0.85, want: 0.875},
		{name: "full night", darkness: 1, want: 0.85},
		{name: "above one clamps to night", darkness: 1.5, want: 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := baseBrightnessForDarkness(tt.darkness); !almostEqual(got, tt.want) {
				t.Errorf("baseBrightnessForDarkness(%.2f) = %.4f, want %.4f",
					tt.darkness, got, tt.want)
			}
		})
	}
}

func TestVibeAndEnergyFactors(t *testing.T) {
	if got := vibeFactor("romantic dinner"); got != 0.80 {
		t.Errorf("soft vibe = %.2f, want 0.80", got)
	}
	if got := vibeFactor("party time"); got != 1.15 {
		t.Errorf("bold vibe = %.2f, want 1.15", got)
	}
	if got := vibeFactor("just lights"); got != 1.0 {
		t.Errorf("neutral vibe = %.2f, want 1.0", got)
	}

	level, known := energyLevel("something for sleep")
	if level != 1 || !known {
		t.Errorf("sleep energy = %d/%v, want 1/true", level, known)
	}
	level, known = energyLevel("game day hype")
	if level != 5 || !known {
		t.Errorf("hype energy = %d/%v, want 5/true", level, known)
	}
	level, known = energyLevel("plain request")
	if level != 3 || known {
		t.Errorf("no energy wording = %d/%v, want 3/false", level, known)
	}
}

func TestInQuietHours(t *testing.T) {
	at := func(hhmm string) time.Time {
		tm, err := time.Parse("15:04", hhmm)
		if err != nil {
			t.Fatalf("bad test clock %q", hhmm)
		}
		return tm
	}

	tests := []struct {
		name       string
		now        string
		start, end string
		want       bool
	}{
		{name: "overnight window, before midnight", now: "23:00", start: "22:30", end: "06:00", want: true},
		{name: "overnight window, after midnight", now: "05:59", start: "22:30", end: "06:00", want: true},
		{name: "overnight window, boundary end", now: "06:00", start: "22:30", end: "06:00", want: false},
		{name: "overnight window, daytime", now: "12:00", start: "22:30", end: "06:00", want: false},
		{name: "same day window inside", now: "14:00", start: "13:00", end: "15:00", want: true},
		{name: "same day window outside", now: "16:00", start: "13:00", end: "15:00", want: false},
		{name: "empty disables", now: "23:00", start: "", end: "", want: false},
		{name: "malformed disables", now: "23:00", start: "late", end: "06:00", want: false},
		{name: "equal bounds disable", now: "23:00", start: "22:00", end: "22:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inQuietHours(at(tt.now), tt.start, tt.end); got != tt.want {
				t.Errorf("inQuietHours(%s, %q, %q) = %v, want %v",
					tt.now, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestResolveContextBrightness(t *testing.T) {
	night := Environment{Darkness: 1}

	// Darkness curve x vibe x energy.
	got := resolveContextBrightness("romantic evening", night, 1.0)
	want := 0.85 * 0.80 * 0.85
	if !almostEqual(got, want) {
		t.Errorf("romantic night = %.4f, want %.4f", got, want)
	}

	// Quiet hours halve the result.
	quiet := Environment{
		Darkness:   1,
		Now:        time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC),
		QuietStart: "22:30",
		QuietEnd:   "06:00",
	}
	got = resolveContextBrightness("romantic evening", quiet, 1.0)
	if !almostEqual(got, want/2) {
		t.Errorf("quiet hours = %.4f, want %.4f", got, want/2)
	}

	// HOA cap bounds the inferred value.
	capped := Environment{Darkness: 0.7, HOACap: true}
	got = resolveContextBrightness("bold and vivid party", capped, 1.0)
	if got != hoaBrightnessCap {
		t.Errorf("hoa cap = %.4f, want %.4f", got, hoaBrightnessCap)
	}

	// Learned bias multiplies in after the cap.
	got = resolveContextBrightness("plain", Environment{Darkness: 0}, 0.5)
	if !almostEqual(got, 0.30) {
		t.Errorf("biased day = %.4f, want 0.30", got)
	}

	// Floor clamp.
	got = resolveContextBrightness("romantic", Environment{Darkness: 0}, 0.01)
	if got != minBrightness {
		t.Errorf("floor = %.4f, want %.4f", got, minBrightness)
	}
}
