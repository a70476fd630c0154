// Package defaults fills every unspecified parameter of a routed intent
// through ordered strategy cascades, tagging each resolved value with its
// provenance.
package defaults

import (
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

// Effect is one entry in the effect catalog. Speeds are normalized 0..1;
// WLEDID is the firmware effect index the bridge forwards.
type Effect struct {
	ID           string
	Name         string
	Motion       intent.MotionCategory
	WLEDID       int
	DefaultSpeed float64
	MinSpeed     float64
	MaxSpeed     float64
}

// IsStatic reports whether the effect has no motion at all. Static effects
// always resolve to speed 0.
func (e Effect) IsStatic() bool { return e.Motion == intent.MotionStatic }

// effectCatalog is the fixed library of supported animations.
var effectCatalog = []Effect{
	{ID: "solid", Name: "Solid", Motion: intent.MotionStatic, WLEDID: 0},
	{ID: "breathe", Name: "Breathe", Motion: intent.MotionPulse, WLEDID: 2, DefaultSpeed: 0.30, MinSpeed: 0.10, MaxSpeed: 0.60},
	{ID: "wipe", Name: "Wipe", Motion: intent.MotionFlow, WLEDID: 3, DefaultSpeed: 0.45, MinSpeed: 0.15, MaxSpeed: 0.85},
	{ID: "chase", Name: "Chase", Motion: intent.MotionFlow, WLEDID: 28, DefaultSpeed: 0.55, MinSpeed: 0.20, MaxSpeed: 0.95},
	{ID: "twinkle", Name: "Twinkle", Motion: intent.MotionFlash, WLEDID: 20, DefaultSpeed: 0.40, MinSpeed: 0.15, MaxSpeed: 0.80},
	{ID: "sparkle", Name: "Sparkle", Motion: intent.MotionFlash, WLEDID: 21, DefaultSpeed: 0.50, MinSpeed: 0.20, MaxSpeed: 0.90},
	{ID: "rainbow", Name: "Rainbow", Motion: intent.MotionFlow, WLEDID: 9, DefaultSpeed: 0.35, MinSpeed: 0.10, MaxSpeed: 0.75},
	{ID: "meteor", Name: "Meteor", Motion: intent.MotionFlow, WLEDID: 76, DefaultSpeed: 0.60, MinSpeed: 0.25, MaxSpeed: 0.95},
	{ID: "fire", Name: "Fire Flicker", Motion: intent.MotionFlash, WLEDID: 45, DefaultSpeed: 0.45, MinSpeed: 0.20, MaxSpeed: 0.80},
	{ID: "wave", Name: "Wave", Motion: intent.MotionFlow, WLEDID: 110, DefaultSpeed: 0.30, MinSpeed: 0.10, MaxSpeed: 0.65},
	{ID: "fade", Name: "Fade", Motion: intent.MotionPulse, WLEDID: 12, DefaultSpeed: 0.25, MinSpeed: 0.10, MaxSpeed: 0.55},
	{ID: "strobe", Name: "Strobe", Motion: intent.MotionFlash, WLEDID: 23, DefaultSpeed: 0.70, MinSpeed: 0.40, MaxSpeed: 1.00},
}

var effectsByID = func() map[string]Effect {
	m := make(map[string]Effect, len(effectCatalog))
	for _, e := range effectCatalog {
		m[e.ID] = e
	}
	return m
}()

// EffectByID looks up a catalog entry.
func EffectByID(id string) (Effect, bool) {
	e, ok := effectsByID[id]
	return e, ok
}

// Effects returns the catalog in its fixed order.
func Effects() []Effect {
	out := make([]Effect, len(effectCatalog))
	copy(out, effectCatalog)
	return out
}

// fallbackEffectByEnergy is the terminal effect table, indexed by energy
// bucket 1..5.
var fallbackEffectByEnergy = map[int]string{
	1: "solid",
	2: "fade",
	3: "breathe",
	4: "twinkle",
	5: "chase",
}
