package defaults

import (
	"strings"
	"time"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

// Theme pairs a palette with an optional signature effect.
type Theme struct {
	Name     string
	Keywords []string
	Colors   []intent.RGB
	EffectID string
}

func (t Theme) matches(normalized string) bool {
	for _, kw := range t.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// teamThemes are the sports palettes. Kansas City entries come first since
// that is where most installs are.
var teamThemes = []Theme{
	{Name: "Chiefs", Keywords: []string{"chiefs", "kansas city chiefs", "arrowhead"},
		Colors: []intent.RGB{{227, 24, 55}, {255, 184, 28}, {255, 255, 255}}, EffectID: "chase"},
	{Name: "Royals", Keywords: []string{"royals"},
		Colors: []intent.RGB{{0, 70, 135}, {189, 155, 96}, {255, 255, 255}}, EffectID: "wipe"},
	{Name: "Sporting KC", Keywords: []string{"sporting kc", "sporting kansas city"},
		Colors: []intent.RGB{{147, 177, 215}, {0, 49, 77}}, EffectID: "wave"},
	{Name: "Jayhawks", Keywords: []string{"jayhawks", "jayhawk", "rock chalk"},
		Colors: []intent.RGB{{0, 81, 186}, {232, 0, 13}, {255, 199, 44}}, EffectID: "chase"},
	{Name: "Tigers", Keywords: []string{"mizzou", "missouri tigers"},
		Colors: []intent.RGB{{241, 184, 45}, {0, 0, 0}}, EffectID: "chase"},
	{Name: "Wildcats", Keywords: []string{"k-state", "kstate", "wildcats"},
		Colors: []intent.RGB{{81, 40, 136}, {255, 255, 255}}, EffectID: "chase"},
}

// eventThemes are curated holiday/event palettes. Keyword match first;
// date match makes "holiday mode" resolve to whatever is close.
var eventThemes = []Theme{
	{Name: "Christmas", Keywords: []string{"christmas", "xmas", "santa"},
		Colors: []intent.RGB{{255, 0, 0}, {0, 160, 60}, {255, 255, 255}}, EffectID: "twinkle"},
	{Name: "Halloween", Keywords: []string{"halloween", "spooky", "trick or treat"},
		Colors: []intent.RGB{{255, 100, 0}, {130, 0, 200}, {0, 200, 60}}, EffectID: "fire"},
	{Name: "Independence Day", Keywords: []string{"july 4", "4th of july", "fourth of july", "independence day"},
		Colors: []intent.RGB{{255, 0, 0}, {255, 255, 255}, {0, 60, 255}}, EffectID: "sparkle"},
	{Name: "Valentine's Day", Keywords: []string{"valentine"},
		Colors: []intent.RGB{{255, 30, 80}, {255, 120, 180}, {255, 255, 255}}, EffectID: "breathe"},
	{Name: "St. Patrick's Day", Keywords: []string{"st patrick", "saint patrick", "shamrock"},
		Colors: []intent.RGB{{0, 160, 60}, {255, 255, 255}, {255, 190, 40}}, EffectID: "wipe"},
	{Name: "Easter", Keywords: []string{"easter"},
		Colors: []intent.RGB{{190, 160, 255}, {255, 250, 160}, {160, 240, 180}}, EffectID: "fade"},
	{Name: "Thanksgiving", Keywords: []string{"thanksgiving", "turkey day"},
		Colors: []intent.RGB{{255, 120, 0}, {180, 70, 0}, {255, 200, 80}}, EffectID: "fade"},
	{Name: "Hanukkah", Keywords: []string{"hanukkah", "chanukah"},
		Colors: []intent.RGB{{0, 60, 255}, {255, 255, 255}}, EffectID: "breathe"},
	{Name: "New Year", Keywords: []string{"new year"},
		Colors: []intent.RGB{{255, 190, 40}, {255, 255, 255}, {150, 0, 220}}, EffectID: "sparkle"},
}

// eventWindows lets a bare "holiday lights" request pick the nearby event.
var eventWindows = []struct {
	name         string
	month        time.Month
	dayLo, dayHi int
}{
	{"Independence Day", time.July, 1, 5},
	{"Halloween", time.October, 15, 31},
	{"Thanksgiving", time.November, 20, 29},
	{"Christmas", time.December, 1, 26},
	{"New Year", time.December, 27, 31},
	{"New Year", time.January, 1, 2},
	{"Valentine's Day", time.February, 10, 15},
	{"St. Patrick's Day", time.March, 14, 18},
}

// conceptThemes are free-association palettes for scenery words.
var conceptThemes = []Theme{
	{Name: "Ocean", Keywords: []string{"ocean", "sea", "underwater", "beach"},
		Colors: []intent.RGB{{0, 70, 255}, {0, 220, 255}, {0, 160, 150}}, EffectID: "wave"},
	{Name: "Sunset", Keywords: []string{"sunset", "dusk sky"},
		Colors: []intent.RGB{{255, 80, 0}, {255, 0, 90}, {150, 0, 220}}, EffectID: "fade"},
	{Name: "Forest", Keywords: []string{"forest", "woodland", "nature"},
		Colors: []intent.RGB{{0, 120, 40}, {140, 255, 0}, {60, 80, 30}}, EffectID: "breathe"},
	{Name: "Galaxy", Keywords: []string{"galaxy", "space", "stars", "cosmic"},
		Colors: []intent.RGB{{60, 0, 120}, {0, 0, 128}, {255, 255, 255}}, EffectID: "twinkle"},
	{Name: "Campfire", Keywords: []string{"campfire", "fireplace", "bonfire"},
		Colors: []intent.RGB{{255, 80, 0}, {255, 160, 0}, {180, 30, 0}}, EffectID: "fire"},
	{Name: "Tropical", Keywords: []string{"tropical", "luau", "tiki"},
		Colors: []intent.RGB{{0, 220, 255}, {255, 120, 180}, {140, 255, 0}}, EffectID: "chase"},
}

// moodPalettes back the last inference step before the hard default.
var moodPalettes = []Theme{
	{Name: "Romantic", Keywords: []string{"romantic", "date night", "anniversary"},
		Colors: []intent.RGB{{200, 0, 60}, {255, 120, 180}, {255, 180, 107}}, EffectID: "breathe"},
	{Name: "Calm", Keywords: []string{"calm", "chill", "relax", "peaceful", "unwind"},
		Colors: []intent.RGB{{110, 190, 255}, {190, 160, 255}, {212, 235, 255}}, EffectID: "fade"},
	{Name: "Cozy", Keywords: []string{"cozy", "warm and", "snug"},
		Colors: []intent.RGB{{255, 180, 107}, {255, 160, 0}, {255, 140, 120}}, EffectID: "breathe"},
	{Name: "Party", Keywords: []string{"party", "celebrate", "dance", "rave"},
		Colors: []intent.RGB{{255, 0, 200}, {0, 220, 255}, {255, 220, 0}}, EffectID: "chase"},
	{Name: "Energetic", Keywords: []string{"energetic", "energy", "pumped", "hype"},
		Colors: []intent.RGB{{255, 0, 0}, {255, 220, 0}, {0, 220, 255}}, EffectID: "sparkle"},
	{Name: "Focus", Keywords: []string{"focus", "work", "study"},
		Colors: []intent.RGB{{212, 235, 255}, {255, 255, 255}}, EffectID: "solid"},
}

func matchTheme(themes []Theme, normalized string) (Theme, bool) {
	for _, t := range themes {
		if t.matches(normalized) {
			return t, true
		}
	}
	return Theme{}, false
}

// matchEventByDate resolves generic festive words to the event whose date
// window contains now.
func matchEventByDate(normalized string, now time.Time) (Theme, bool) {
	if !strings.Contains(normalized, "holiday") && !strings.Contains(normalized, "festive") {
		return Theme{}, false
	}
	for _, w := range eventWindows {
		if now.Month() == w.month && now.Day() >= w.dayLo && now.Day() <= w.dayHi {
			for _, t := range eventThemes {
				if t.Name == w.name {
					return t, true
				}
			}
		}
	}
	return Theme{}, false
}
