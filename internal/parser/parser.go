// Package parser is the local deterministic resolver: a fixed ordered list
// of pure matchers that turn obvious phrases into intents without any
// network round trip.
package parser

import (
	"regexp"
	"strings"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
)

// shortCircuitConfidence stops matcher evaluation early; anything this
// certain cannot be beaten by a later matcher.
const shortCircuitConfidence = 0.95

// relativeBrightnessDelta is the step applied for "brighter"/"dimmer",
// on the 0-255 device scale.
const relativeBrightnessDelta = 30

type matcher func(normalized string, saved []scenes.Scene) (intent.Intent, bool)

// matchers run in priority order. Power and navigation are unambiguous;
// scene names go last among the high-confidence group so "red alert"
// (a saved scene) still wins over the bare color "red" only through
// its higher confidence.
var matchers = []matcher{
	matchPower,
	matchBrightness,
	matchSolidColor,
	matchSavedScene,
	matchNavigation,
}

// ParseLocal resolves text against every matcher and returns the highest
// confidence candidate, short-circuiting at 0.95. No matcher firing yields
// an Unknown intent with confidence zero. Pure function: safe to call
// concurrently, the saved list is only read.
func ParseLocal(text string, saved []scenes.Scene) intent.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	best := intent.Unknown(text, intent.TierLocal)

	for _, m := range matchers {
		candidate, ok := m(normalized, saved)
		if !ok {
			continue
		}
		candidate.RawText = text
		candidate.Tier = intent.TierLocal
		if candidate.Confidence > best.Confidence {
			best = candidate
		}
		if best.Confidence >= shortCircuitConfidence {
			break
		}
	}
	return best
}

var (
	powerOffRe = regexp.MustCompile(`^(turn\s+(it\s+|them\s+|everything\s+)?off|(lights?\s+)?off|shut\s+(it\s+|them\s+)?(off|down)|kill\s+the\s+lights?)$`)
	powerOnRe  = regexp.MustCompile(`^(turn\s+(it\s+|them\s+|everything\s+)?on|(lights?\s+)?on|lights?\s+up)$`)
)

func matchPower(normalized string, _ []scenes.Scene) (intent.Intent, bool) {
	if powerOffRe.MatchString(normalized) {
		return intent.Intent{
			Kind:       intent.KindPower,
			Power:      &intent.PowerParams{On: false},
			Confidence: 0.98,
		}, true
	}
	if powerOnRe.MatchString(normalized) {
		return intent.Intent{
			Kind:       intent.KindPower,
			Power:      &intent.PowerParams{On: true},
			Confidence: 0.98,
		}, true
	}
	return intent.Intent{}, false
}

var (
	percentRe    = regexp.MustCompile(`(\d{1,3})\s*(?:%|percent)`)
	brightnessRe = regexp.MustCompile(`brightness\s+(?:to\s+)?(\d{1,3})`)
)

// namedLevels are word forms of an absolute brightness.
var namedLevels = []struct {
	word       string
	value      int
	confidence float64
}{
	{"max brightness", 255, 0.95},
	{"full brightness", 255, 0.95},
	{"half brightness", 128, 0.95},
	{"maximum", 255, 0.90},
	{"max", 255, 0.90},
	{"full", 255, 0.88},
	{"half", 128, 0.88},
	{"low", 64, 0.86},
}

func matchBrightness(normalized string, _ []scenes.Scene) (intent.Intent, bool) {
	if m := percentRe.FindStringSubmatch(normalized); m != nil {
		return brightnessAbsolute(percentTo255(m[1]), 0.95), true
	}
	if m := brightnessRe.FindStringSubmatch(normalized); m != nil {
		return brightnessAbsolute(percentTo255(m[1]), 0.95), true
	}

	switch {
	case containsAny(normalized, "brighter", "brighten", "turn it up", "turn up"):
		return brightnessRelative(relativeBrightnessDelta), true
	case containsAny(normalized, "dimmer", "darker", "turn it down", "turn down", "tone it down"):
		return brightnessRelative(-relativeBrightnessDelta), true
	}

	// Named levels only count when the phrase is about brightness at all,
	// otherwise "full" inside "colorful" style phrases would misfire.
	if strings.Contains(normalized, "bright") || strings.Contains(normalized, "dim ") || normalized == "dim" {
		for _, lvl := range namedLevels {
			if containsWord(normalized, lvl.word) {
				return brightnessAbsolute(lvl.value, lvl.confidence), true
			}
		}
		if normalized == "dim" || strings.HasPrefix(normalized, "dim ") {
			return brightnessAbsolute(64, 0.86), true
		}
	}
	return intent.Intent{}, false
}

func brightnessAbsolute(value int, confidence float64) intent.Intent {
	return intent.Intent{
		Kind:       intent.KindBrightness,
		Brightness: &intent.BrightnessParams{Value: value},
		Confidence: confidence,
	}
}

func brightnessRelative(delta int) intent.Intent {
	return intent.Intent{
		Kind:       intent.KindBrightness,
		Brightness: &intent.BrightnessParams{Relative: true, Delta: delta},
		Confidence: 0.88,
	}
}

func percentTo255(digits string) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	if n > 100 {
		n = 100
	}
	return int(float64(n)*255.0/100.0 + 0.5)
}

var hexColorRe = regexp.MustCompile(`#?([0-9a-f]{6})\b`)

func matchSolidColor(normalized string, _ []scenes.Scene) (intent.Intent, bool) {
	if m := hexColorRe.FindStringSubmatch(normalized); m != nil {
		c, err := scenes.ParseHex(m[1])
		if err == nil {
			return intent.Intent{
				Kind:       intent.KindSolidColor,
				SolidColor: &intent.SolidColorParams{RGB: c, Name: "#" + strings.ToUpper(m[1])},
				Confidence: 0.95,
			}, true
		}
	}

	name, rgb, ok := findNamedColor(normalized)
	if !ok {
		return intent.Intent{}, false
	}
	// A phrase that is essentially just the color name is certain; extra
	// non-filler words leave room for the remote tier to do better.
	confidence := 0.87
	if isOnlyColorRequest(normalized, name) {
		confidence = 0.95
	}
	return intent.Intent{
		Kind:       intent.KindSolidColor,
		SolidColor: &intent.SolidColorParams{RGB: rgb, Name: name},
		Confidence: confidence,
	}, true
}

// fillerWords may surround a bare color request without diluting it.
var fillerWords = map[string]bool{
	"make": true, "it": true, "the": true, "them": true, "all": true,
	"lights": true, "light": true, "turn": true, "set": true, "to": true,
	"go": true, "please": true, "solid": true, "color": true, "just": true,
}

func isOnlyColorRequest(normalized, colorName string) bool {
	rest := strings.ReplaceAll(normalized, colorName, " ")
	for _, w := range strings.Fields(rest) {
		if !fillerWords[strings.Trim(w, ".,!?")] {
			return false
		}
	}
	return true
}

func matchSavedScene(normalized string, saved []scenes.Scene) (intent.Intent, bool) {
	for _, sc := range saved {
		lower := strings.ToLower(strings.TrimSpace(sc.Name))
		if lower == "" {
			continue
		}
		if normalized == lower {
			return sceneIntent(sc, 0.97), true
		}
	}
	for _, sc := range saved {
		lower := strings.ToLower(strings.TrimSpace(sc.Name))
		if len(lower) < 4 {
			continue
		}
		if strings.Contains(normalized, lower) {
			return sceneIntent(sc, 0.90), true
		}
	}
	return intent.Intent{}, false
}

func sceneIntent(sc scenes.Scene, confidence float64) intent.Intent {
	return intent.Intent{
		Kind:       intent.KindScene,
		Scene:      &intent.SceneParams{ID: sc.ID, Name: sc.Name},
		Confidence: confidence,
	}
}

// navRoutes maps navigation phrases to app routes.
var navRoutes = []struct {
	phrase string
	route  string
	tab    string
}{
	{"go to settings", "/settings", ""},
	{"open settings", "/settings", ""},
	{"go to schedules", "/schedules", ""},
	{"open schedules", "/schedules", ""},
	{"go to schedule", "/schedules", ""},
	{"show my scenes", "/scenes", "saved"},
	{"show scenes", "/scenes", "saved"},
	{"go to scenes", "/scenes", "saved"},
	{"show favorites", "/scenes", "favorites"},
	{"open favorites", "/scenes", "favorites"},
	{"go home", "/home", ""},
	{"go back", "/back", ""},
}

func matchNavigation(normalized string, _ []scenes.Scene) (intent.Intent, bool) {
	for _, nav := range navRoutes {
		if strings.Contains(normalized, nav.phrase) {
			return intent.Intent{
				Kind:       intent.KindNavigate,
				Navigate:   &intent.NavigateParams{Route: nav.route, Tab: nav.tab},
				Confidence: 0.96,
			}, true
		}
	}
	return intent.Intent{}, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
