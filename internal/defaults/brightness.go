package defaults

import (
	"strings"
	"time"
)

// Environment is the ambient state the brightness cascade consults.
// Darkness runs 0 (full day) to 1 (full night). CurrentBrightness is the
// level of the last applied suggestion, nil when nothing is playing; the
// router fills it in so relative requests have something to step from.
type Environment struct {
	Darkness          float64
	Now               time.Time
	QuietStart        string // "22:30", empty disables quiet hours
	QuietEnd          string
	HOACap            bool
	CurrentBrightness *float64
}

// Brightness curve anchors: 0.60 at full day, a 0.90 peak at dusk, easing
// to 0.85 at full night.
const (
	dayBrightness   = 0.60
	duskBrightness  = 0.90
	nightBrightness = 0.85
	duskDarkness    = 0.70

	hoaBrightnessCap = 0.75
	minBrightness    = 0.05
)

// baseBrightnessForDarkness is the piecewise-linear darkness curve, before
// vibe/energy factors, quiet hours and learned bias.
func baseBrightnessForDarkness(darkness float64) float64 {
	if darkness <= 0 {
		return dayBrightness
	}
	if darkness >= 1 {
		return nightBrightness
	}
	if darkness <= duskDarkness {
		return dayBrightness + (duskBrightness-dayBrightness)*(darkness/duskDarkness)
	}
	return duskBrightness + (nightBrightness-duskBrightness)*((darkness-duskDarkness)/(1-duskDarkness))
}

// vibeFactor scales brightness by how soft or bold the request reads,
// 0.80 for the softest phrasing up to 1.15 for the boldest.
func vibeFactor(normalized string) float64 {
	switch {
	case containsAny(normalized, "romantic", "intimate", "subtle", "soft", "gentle"):
		return 0.80
	case containsAny(normalized, "calm", "chill", "relax", "cozy", "mellow"):
		return 0.90
	case containsAny(normalized, "bold", "vivid", "bright and", "dramatic"):
		return 1.10
	case containsAny(normalized, "party", "blast", "loud", "crazy", "max out"):
		return 1.15
	default:
		return 1.0
	}
}

// energyLevel buckets the request into 1 (stillest) .. 5 (wildest).
// The second return is false when no energy wording was present.
func energyLevel(normalized string) (int, bool) {
	switch {
	case containsAny(normalized, "still", "static", "no motion", "sleep"):
		return 1, true
	case containsAny(normalized, "calm", "chill", "relax", "slow", "gentle", "romantic", "cozy"):
		return 2, true
	case containsAny(normalized, "party", "rave", "crazy", "wild", "hype", "pumped"):
		return 5, true
	case containsAny(normalized, "energetic", "upbeat", "fast", "exciting", "game day"):
		return 4, true
	case containsAny(normalized, "festive", "fun", "lively"):
		return 3, true
	default:
		return 3, false
	}
}

// energyBrightnessFactor maps the 1..5 bucket onto 0.70..1.15.
func energyBrightnessFactor(level int) float64 {
	switch level {
	case 1:
		return 0.70
	case 2:
		return 0.85
	case 3:
		return 1.0
	case 4:
		return 1.08
	default:
		return 1.15
	}
}

// inQuietHours checks the configured window, supporting overnight
// wraparound (22:30-06:00).
func inQuietHours(now time.Time, start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	s, okS := parseClock(start)
	e, okE := parseClock(end)
	if !okS || !okE {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	if s == e {
		return false
	}
	if s < e {
		return cur >= s && cur < e
	}
	// Overnight window.
	return cur >= s || cur < e
}

func parseClock(v string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, m := atoi(parts[0]), atoi(parts[1])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return -1
	}
	return n
}

// resolveContextBrightness runs the full inferred-brightness pipeline:
// darkness curve x vibe x energy, quiet-hours halving, HOA cap, learned
// bias, clamp.
func resolveContextBrightness(normalized string, env Environment, bias float64) float64 {
	b := baseBrightnessForDarkness(env.Darkness)
	b *= vibeFactor(normalized)
	level, _ := energyLevel(normalized)
	b *= energyBrightnessFactor(level)

	if inQuietHours(env.Now, env.QuietStart, env.QuietEnd) {
		b /= 2
	}
	if env.HOACap && b > hoaBrightnessCap {
		b = hoaBrightnessCap
	}
	if bias > 0 {
		b *= bias
	}
	return clampFloat(b, minBrightness, 1.0)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
