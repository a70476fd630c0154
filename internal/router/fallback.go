package router

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

var titleCaser = cases.Title(language.English)

// Fallback is the graceful answer when the remote tier is unreachable: a
// short apology plus a handful of concrete commands the local tier is
// guaranteed to understand.
type Fallback struct {
	Apology     string
	Suggestions []string
}

const apologyText = "Sorry, I couldn't work that one out right now. Here are a few things I can do straight away:"

// fallbackResult shapes the clarification list around whatever the local
// tier partially understood, so "something blueish" still gets color
// suggestions rather than generic ones.
func (r *Router) fallbackResult(text string, local intent.Intent) *Result {
	return &Result{
		Intent: intent.Unknown(text, intent.TierLocal),
		Fallback: &Fallback{
			Apology:     apologyText,
			Suggestions: r.clarifications(local),
		},
	}
}

func (r *Router) clarifications(local intent.Intent) []string {
	switch local.Kind {
	case intent.KindBrightness:
		return []string{
			"Brightness to 50%",
			"Max brightness",
			"Dim the lights",
		}
	case intent.KindSolidColor:
		out := []string{}
		if local.SolidColor != nil && local.SolidColor.Name != "" {
			out = append(out, "Solid "+titleCaser.String(local.SolidColor.Name))
		}
		return append(out, "Warm white", "Solid blue")
	case intent.KindScene:
		out := []string{}
		if local.Scene != nil && local.Scene.Name != "" {
			out = append(out, "Play "+titleCaser.String(local.Scene.Name))
		}
		return append(out, "Show my scenes", "Show favorites")
	case intent.KindPower:
		return []string{"Turn the lights on", "Turn the lights off"}
	}

	out := []string{"Warm white", "Brightness to 50%"}
	if favs := r.store.FavoriteNames(); len(favs) > 0 {
		out = append(out, "Play "+titleCaser.String(favs[0]))
	} else {
		out = append(out, "Show my scenes")
	}
	return out
}
