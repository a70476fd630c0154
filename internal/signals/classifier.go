package signals

import (
	"regexp"
	"strings"
)

// Classification thresholds. Below minConfidence nothing is trusted; a gap
// smaller than ambiguityGap means neither interpretation clearly won.
const (
	minConfidence = 0.30
	ambiguityGap  = 0.25

	presetNameBonus  = 0.40
	activeSceneBonus = 0.15
	hueSplitBonus    = 0.20
)

// Classification says whether the phrase edits the current scene or asks
// for a new one.
type Classification string

const (
	ClassEdit      Classification = "edit"
	ClassNewScene  Classification = "new_scene"
	ClassAmbiguous Classification = "ambiguous"
)

// MatchedSignal records one fired table entry for provenance.
type MatchedSignal struct {
	Set     string
	Pattern string
}

// Context is the live state the classifier consults. It carries no
// behavior; the caller assembles it per request.
type Context struct {
	SceneActive        bool
	ActiveEffectMoving bool
	ActiveColorCount   int
	SavedNames         []string
	FavoriteNames      []string
}

// Result is the immutable classification output for one phrase.
type Result struct {
	Classification    Classification
	EditScore         float64
	NewScore          float64
	Matched           []MatchedSignal
	MatchedPresetName string
}

// Classify scores a phrase against the signal table and live context.
// Deterministic and side-effect free: identical inputs always yield an
// identical Result.
func Classify(text string, ctx Context) Result {
	normalized := strings.ToLower(strings.TrimSpace(text))

	r := Result{}
	for _, e := range editSignals {
		if e.Matches(normalized) {
			r.EditScore += e.Weight
			r.Matched = append(r.Matched, MatchedSignal{Set: "edit", Pattern: e.Pattern})
		}
	}
	for _, e := range newSceneSignals {
		if e.Matches(normalized) {
			r.NewScore += e.Weight
			r.Matched = append(r.Matched, MatchedSignal{Set: "new_scene", Pattern: e.Pattern})
		}
	}
	for _, e := range ambiguousSignals {
		if e.Matches(normalized) {
			r.EditScore += e.Weight / 2
			r.NewScore += e.Weight / 2
			r.Matched = append(r.Matched, MatchedSignal{Set: "ambiguous", Pattern: e.Pattern})
		}
	}

	// A phrase naming a saved preset is almost always a recall request.
	// Favorites are checked first; the bonus is applied at most once.
	if name := matchPresetName(normalized, ctx.FavoriteNames); name != "" {
		r.NewScore += presetNameBonus
		r.MatchedPresetName = name
	} else if name := matchPresetName(normalized, ctx.SavedNames); name != "" {
		r.NewScore += presetNameBonus
		r.MatchedPresetName = name
	}

	// With an animation already running, short phrases lean toward edits.
	if ctx.SceneActive && ctx.ActiveEffectMoving {
		r.EditScore += activeSceneBonus
	}

	// A bare hue word while several hues are active could mean "shift the
	// palette" or "solid color scene": split the bonus evenly.
	if ctx.ActiveColorCount > 1 && isBareHueWord(normalized) {
		r.EditScore += hueSplitBonus / 2
		r.NewScore += hueSplitBonus / 2
	}

	r.Classification = decide(r.EditScore, r.NewScore)
	return r
}

func decide(edit, newScore float64) Classification {
	max := edit
	if newScore > max {
		max = newScore
	}
	gap := edit - newScore
	if gap < 0 {
		gap = -gap
	}
	if max < minConfidence || gap < ambiguityGap {
		return ClassAmbiguous
	}
	if edit > newScore {
		return ClassEdit
	}
	return ClassNewScene
}

// matchPresetName finds the first saved name the phrase refers to: exact
// match, substring, or whole-word match for very short names (so "KC"
// doesn't fire inside "kick"). First match wins.
func matchPresetName(normalized string, names []string) string {
	for _, name := range names {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" {
			continue
		}
		if normalized == lower {
			return name
		}
		if len(lower) <= 3 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(lower) + `\b`)
			if re.MatchString(normalized) {
				return name
			}
			continue
		}
		if strings.Contains(normalized, lower) {
			return name
		}
	}
	return ""
}

// isBareHueWord reports whether the phrase reduces to a single hue word
// after stripping stopwords.
func isBareHueWord(normalized string) bool {
	var kept []string
	for _, w := range strings.Fields(normalized) {
		w = strings.Trim(w, ".,!?")
		if w == "" || stopwords[w] {
			continue
		}
		kept = append(kept, w)
	}
	return len(kept) == 1 && hueWords[kept[0]]
}
