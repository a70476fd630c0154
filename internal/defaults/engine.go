package defaults

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/parser"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/signals"
)

// BiasSource exposes the learned per-user corrections. Implemented by the
// habits tracker; a nil source means no corrections.
type BiasSource interface {
	// BrightnessBias returns the multiplicative correction for the bucket
	// containing the given ambient darkness, 1.0 when none was learned.
	BrightnessBias(darkness float64) float64
	// EffectPreferences returns learned effect-id weights, highest first
	// semantics left to the caller.
	EffectPreferences() map[string]float64
}

// Engine resolves every unspecified parameter of an intent.
type Engine struct {
	store *scenes.Store
	bias  BiasSource
	log   *zap.Logger
}

// NewEngine builds an engine. store and bias may be nil; log may not.
func NewEngine(store *scenes.Store, bias BiasSource, log *zap.Logger) *Engine {
	return &Engine{store: store, bias: bias, log: log}
}

// Resolve produces a fully-specified suggestion. Each of the five
// parameters runs its own ordered cascade; the last strategy in every
// cascade is a hard default, so resolution always terminates with a value
// and a provenance tag.
func (e *Engine) Resolve(in intent.Intent, cls signals.Result, raw string, env Environment) intent.ResolvedSuggestion {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	out := intent.ResolvedSuggestion{Zone: "all"}
	out.Sources.Zone = intent.SystemDefault // placeholder cascade of one

	out.Colors, out.Sources.Colors = e.resolveColors(in, cls, normalized, env)
	out.EffectID, out.Motion, out.Sources.Effect = e.resolveEffect(in, cls, normalized)
	out.Brightness, out.Sources.Brightness = e.resolveBrightness(in, normalized, env)
	out.Speed, out.Sources.Speed = e.resolveSpeed(in, cls, out.EffectID, normalized)

	out.Payload = e.materializePayload(in, out)

	e.log.Debug("defaults resolved",
		zap.String("effect", out.EffectID),
		zap.Float64("brightness", out.Brightness),
		zap.String("colors_source", string(out.Sources.Colors)),
		zap.Float64("overall_confidence", out.OverallConfidence()))
	return out
}

// colorStrategy returns its palette, provenance, and whether it fired.
type colorStrategy func() ([]intent.RGB, intent.Provenance, bool)

func (e *Engine) resolveColors(in intent.Intent, cls signals.Result, normalized string, env Environment) ([]intent.RGB, intent.Provenance) {
	strategies := []colorStrategy{
		// 1. Colors the user stated outright.
		func() ([]intent.RGB, intent.Provenance, bool) {
			if in.Kind == intent.KindSolidColor && in.SolidColor != nil {
				return []intent.RGB{in.SolidColor.RGB}, intent.UserSpecified, true
			}
			if in.Kind == intent.KindEffect && in.Effect != nil && len(in.Effect.Colors) > 0 {
				return in.Effect.Colors, intent.UserSpecified, true
			}
			if sc, ok := e.sceneForIntent(in, cls); ok {
				if cols := sc.RGBColors(); len(cols) > 0 {
					return cols, intent.UserSpecified, true
				}
			}
			return nil, "", false
		},
		// 2. Sports team.
		themeColors(teamThemes, normalized),
		// 3. Holiday/event, by keyword then by date window.
		func() ([]intent.RGB, intent.Provenance, bool) {
			if t, ok := matchTheme(eventThemes, normalized); ok {
				return t.Colors, intent.ContextInferred, true
			}
			if t, ok := matchEventByDate(normalized, env.Now); ok {
				return t.Colors, intent.ContextInferred, true
			}
			return nil, "", false
		},
		// 4. Concept palette.
		themeColors(conceptThemes, normalized),
		// 5. Free-form color words anywhere in the phrase.
		func() ([]intent.RGB, intent.Provenance, bool) {
			if cols := parser.ExtractNamedColors(normalized); len(cols) > 0 {
				return cols, intent.ContextInferred, true
			}
			return nil, "", false
		},
		// 6. Mood palette.
		themeColors(moodPalettes, normalized),
	}

	for _, s := range strategies {
		if cols, prov, ok := s(); ok {
			return cols, prov
		}
	}
	// 7. Terminal fallback: warm white.
	return []intent.RGB{{255, 180, 107}}, intent.SystemDefault
}

func themeColors(themes []Theme, normalized string) colorStrategy {
	return func() ([]intent.RGB, intent.Provenance, bool) {
		if t, ok := matchTheme(themes, normalized); ok {
			return t.Colors, intent.ContextInferred, true
		}
		return nil, "", false
	}
}

func (e *Engine) lookupScene(p *intent.SceneParams) (scenes.Scene, bool) {
	if p.ID != "" {
		if sc, ok := e.store.ByID(p.ID); ok {
			return sc, true
		}
	}
	if p.Name != "" {
		return e.store.ByName(p.Name)
	}
	return scenes.Scene{}, false
}

// sceneForIntent finds the saved scene a request recalls, either through a
// typed scene intent or the classifier's matched preset name. Every cascade
// consults it first so a recalled scene plays exactly as it was saved.
func (e *Engine) sceneForIntent(in intent.Intent, cls signals.Result) (scenes.Scene, bool) {
	if e.store == nil {
		return scenes.Scene{}, false
	}
	if in.Kind == intent.KindScene && in.Scene != nil {
		if sc, ok := e.lookupScene(in.Scene); ok {
			return sc, true
		}
	}
	if cls.MatchedPresetName != "" {
		return e.store.ByName(cls.MatchedPresetName)
	}
	return scenes.Scene{}, false
}

func (e *Engine) resolveEffect(in intent.Intent, cls signals.Result, normalized string) (string, intent.MotionCategory, intent.Provenance) {
	// 1. A recalled scene plays with the effect it was saved with.
	if sc, ok := e.sceneForIntent(in, cls); ok && sc.EffectID != "" {
		if eff, ok := EffectByID(sc.EffectID); ok {
			return eff.ID, eff.Motion, intent.UserSpecified
		}
	}

	// 2. Explicit effect in the intent.
	if in.Kind == intent.KindEffect && in.Effect != nil {
		if eff, ok := EffectByID(in.Effect.ID); ok {
			return eff.ID, eff.Motion, intent.UserSpecified
		}
		if eff, ok := effectByName(in.Effect.Name); ok {
			return eff.ID, eff.Motion, intent.UserSpecified
		}
	}
	if in.Kind == intent.KindSolidColor {
		return "solid", intent.MotionStatic, intent.UserSpecified
	}

	// 3. Theme-library effect.
	for _, themes := range [][]Theme{teamThemes, eventThemes, conceptThemes} {
		if t, ok := matchTheme(themes, normalized); ok && t.EffectID != "" {
			if eff, ok := EffectByID(t.EffectID); ok {
				return eff.ID, eff.Motion, intent.ContextInferred
			}
		}
	}

	// 4. Semantic decision tree, preference-boosted.
	if id, ok := e.effectFromSemantics(normalized); ok {
		if eff, ok := EffectByID(id); ok {
			return eff.ID, eff.Motion, intent.ContextInferred
		}
	}

	// Terminal: energy-level fallback table.
	level, _ := energyLevel(normalized)
	eff := effectsByID[fallbackEffectByEnergy[level]]
	return eff.ID, eff.Motion, intent.SystemDefault
}

// semanticEffectCues maps descriptive wording to effect candidates with
// base scores; the learned preference weight is added on top.
var semanticEffectCues = []struct {
	effectID string
	words    []string
	score    float64
}{
	{"twinkle", []string{"twinkle", "twinkling", "starry"}, 1.0},
	{"sparkle", []string{"sparkle", "sparkly", "glitter"}, 1.0},
	{"chase", []string{"chase", "chasing", "running", "racing"}, 1.0},
	{"meteor", []string{"meteor", "shooting star", "comet"}, 1.0},
	{"strobe", []string{"strobe", "flash", "flashing"}, 1.0},
	{"wave", []string{"wave", "waves", "flowing"}, 1.0},
	{"rainbow", []string{"rainbow", "all the colors", "every color"}, 1.0},
	{"fire", []string{"flicker", "flame", "crackle"}, 1.0},
	{"breathe", []string{"breathe", "breathing", "pulsing", "pulse"}, 1.0},
	{"fade", []string{"fade", "fading", "dissolve"}, 0.9},
	{"breathe", []string{"romantic", "calm", "gentle", "soft"}, 0.5},
	{"chase", []string{"party", "game day", "hype"}, 0.5},
	{"twinkle", []string{"magical", "festive"}, 0.5},
}

// effectFromSemantics scores the mood/energy cues against the phrase and
// tilts the result toward the user's historically preferred effects.
func (e *Engine) effectFromSemantics(normalized string) (string, bool) {
	prefs := map[string]float64{}
	if e.bias != nil {
		prefs = e.bias.EffectPreferences()
	}

	scores := map[string]float64{}
	for _, cue := range semanticEffectCues {
		if containsAny(normalized, cue.words...) {
			scores[cue.effectID] += cue.score
		}
	}
	if len(scores) == 0 {
		return "", false
	}
	for id := range scores {
		scores[id] += prefs[id] * 0.3
	}

	bestID, bestScore := "", 0.0
	for id, s := range scores {
		if s > bestScore || (s == bestScore && id < bestID) {
			bestID, bestScore = id, s
		}
	}
	return bestID, bestID != ""
}

func effectByName(name string) (Effect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Effect{}, false
	}
	for _, e := range effectCatalog {
		if strings.ToLower(e.Name) == name || e.ID == name {
			return e, true
		}
	}
	return Effect{}, false
}

func (e *Engine) resolveBrightness(in intent.Intent, normalized string, env Environment) (float64, intent.Provenance) {
	// 1. Explicit absolute brightness.
	if in.Kind == intent.KindBrightness && in.Brightness != nil {
		if in.Brightness.Relative {
			return e.relativeBrightness(in.Brightness.Delta, normalized, env)
		}
		return explicitBrightness(in.Brightness.Value, env), intent.UserSpecified
	}
	if in.Kind == intent.KindEffect && in.Effect != nil && in.Effect.Brightness != nil {
		return explicitBrightness(*in.Effect.Brightness, env), intent.UserSpecified
	}

	// 2. Ambient curve with vibe/energy factors, quiet hours, cap and
	// learned bias.
	return e.inferredBrightness(normalized, env)
}

// relativeBrightness steps "brighter"/"dimmer" from the level the lights
// are currently at; without a prior suggestion the ambient curve stands in
// for the current level. The HOA cap still bounds the result.
func (e *Engine) relativeBrightness(delta int, normalized string, env Environment) (float64, intent.Provenance) {
	base := 0.0
	if env.CurrentBrightness != nil {
		base = *env.CurrentBrightness
	} else {
		base, _ = e.inferredBrightness(normalized, env)
	}
	b := base + float64(delta)/255.0
	if env.HOACap && b > hoaBrightnessCap {
		b = hoaBrightnessCap
	}
	return clampFloat(b, minBrightness, 1.0), intent.ContextInferred
}

// explicitBrightness honors a user-stated value. The HOA cap still applies
// to explicit values; quiet-hours dampening does not.
func explicitBrightness(value255 int, env Environment) float64 {
	b := float64(value255) / 255.0
	if env.HOACap && b > hoaBrightnessCap {
		b = hoaBrightnessCap
	}
	return clampFloat(b, minBrightness, 1.0)
}

func (e *Engine) inferredBrightness(normalized string, env Environment) (float64, intent.Provenance) {
	bias := 1.0
	if e.bias != nil {
		bias = e.bias.BrightnessBias(env.Darkness)
	}
	return resolveContextBrightness(normalized, env, bias), intent.ContextInferred
}

func (e *Engine) resolveSpeed(in intent.Intent, cls signals.Result, effectID, normalized string) (*float64, intent.Provenance) {
	// 1. A recalled scene plays at the speed it was saved with.
	if sc, ok := e.sceneForIntent(in, cls); ok && sc.Speed > 0 {
		v := clampFloat(float64(sc.Speed)/255.0, 0, 1)
		return &v, intent.UserSpecified
	}

	// 2. Explicit speed in the payload.
	if in.Kind == intent.KindEffect && in.Effect != nil && in.Effect.Speed != nil {
		v := clampFloat(float64(*in.Effect.Speed)/255.0, 0, 1)
		return &v, intent.UserSpecified
	}

	// 3. Effect default shifted toward its min/max bound by energy level.
	eff, ok := EffectByID(effectID)
	if !ok || eff.IsStatic() {
		zero := 0.0
		return &zero, intent.SystemDefault
	}
	level, known := energyLevel(normalized)
	v := shiftedSpeed(eff, level)
	if known {
		return &v, intent.ContextInferred
	}
	return &v, intent.SystemDefault
}

// shiftedSpeed moves the effect's default speed toward its min (energy 1)
// or max (energy 5); bucket 3 keeps the default.
func shiftedSpeed(eff Effect, level int) float64 {
	shift := float64(level-3) / 2.0 // -1..+1
	switch {
	case shift > 0:
		return clampFloat(eff.DefaultSpeed+shift*(eff.MaxSpeed-eff.DefaultSpeed), 0, 1)
	case shift < 0:
		return clampFloat(eff.DefaultSpeed+shift*(eff.DefaultSpeed-eff.MinSpeed), 0, 1)
	default:
		return eff.DefaultSpeed
	}
}

// materializePayload builds the device payload when the upstream intent
// did not already carry one (local power/brightness commands build their
// own in the router).
func (e *Engine) materializePayload(in intent.Intent, s intent.ResolvedSuggestion) *intent.DevicePayload {
	eff, _ := EffectByID(s.EffectID)
	speed := 0.0
	if s.Speed != nil {
		speed = *s.Speed
	}
	on := true
	if in.IsPowerOff() {
		on = false
	}
	return intent.NewDevicePayload(
		on,
		int(s.Brightness*255+0.5),
		eff.WLEDID,
		int(speed*255+0.5),
		s.Colors,
	)
}
