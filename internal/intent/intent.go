// Package intent defines the typed lighting command model shared by the
// local parser, the remote resolver and the defaults engine.
package intent

import "fmt"

// Kind identifies the shape of a lighting command.
type Kind string

const (
	KindPower      Kind = "power"
	KindBrightness Kind = "brightness"
	KindSolidColor Kind = "solid_color"
	KindEffect     Kind = "effect"
	KindScene      Kind = "scene"
	KindNavigate   Kind = "navigate"
	KindUnknown    Kind = "unknown"
)

// Tier records which resolver produced an intent.
type Tier string

const (
	TierLocal  Tier = "local"
	TierRemote Tier = "remote"
)

// RGB is a single 8-bit-per-channel color.
type RGB [3]uint8

// Hex renders the color as an RRGGBB string without a leading #.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c[0], c[1], c[2])
}

// PowerParams switches the whole installation on or off.
type PowerParams struct {
	On bool
}

// BrightnessParams carries an absolute 0-255 value or a signed relative
// delta ("brighter"/"dimmer").
type BrightnessParams struct {
	Value    int
	Relative bool
	Delta    int
}

// SolidColorParams sets every zone to one color.
type SolidColorParams struct {
	RGB  RGB
	Name string
}

// EffectParams requests a named animation. Speed and Intensity are 0-255
// when set; nil means unspecified. Remote payloads may also carry the
// palette and brightness alongside the effect; those ride here so the
// defaults engine can honor them as user-specified.
type EffectParams struct {
	ID         string
	Name       string
	Speed      *int
	Intensity  *int
	Colors     []RGB
	Brightness *int // 0-255
}

// SceneParams recalls a saved scene by id or name.
type SceneParams struct {
	ID   string
	Name string
}

// NavigateParams moves the app to a screen rather than changing the lights.
type NavigateParams struct {
	Route string
	Tab   string
}

// Intent is a typed, partially- or fully-specified lighting command.
// Exactly one of the params pointers matching Kind is non-nil. Intents are
// immutable once constructed; resolvers build a fresh one per request.
type Intent struct {
	Kind       Kind
	Power      *PowerParams
	Brightness *BrightnessParams
	SolidColor *SolidColorParams
	Effect     *EffectParams
	Scene      *SceneParams
	Navigate   *NavigateParams

	Confidence float64
	RawText    string
	Tier       Tier
}

// Unknown returns the zero intent for text nothing could resolve.
func Unknown(rawText string, tier Tier) Intent {
	return Intent{Kind: KindUnknown, RawText: rawText, Tier: tier}
}

// IsHighConfidence reports whether the router may skip the remote tier.
func (i Intent) IsHighConfidence() bool {
	return i.Confidence > 0.85
}

// IsPowerOff reports whether the intent turns everything off. Power-off
// commands skip defaults enrichment entirely.
func (i Intent) IsPowerOff() bool {
	return i.Kind == KindPower && i.Power != nil && !i.Power.On
}
