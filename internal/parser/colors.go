package parser

import (
	"sort"
	"strings"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

// namedColors maps literal color words to RGB. Lookup is longest-name-first
// so "warm white" never loses to "white".
var namedColors = map[string]intent.RGB{
	"warm white": {255, 180, 107},
	"cool white": {212, 235, 255},
	"white":      {255, 255, 255},
	"red":        {255, 0, 0},
	"crimson":    {220, 20, 60},
	"orange":     {255, 120, 0},
	"amber":      {255, 160, 0},
	"yellow":     {255, 220, 0},
	"gold":       {255, 190, 40},
	"green":      {0, 200, 0},
	"lime":       {140, 255, 0},
	"teal":       {0, 160, 150},
	"turquoise":  {64, 224, 208},
	"cyan":       {0, 220, 255},
	"sky blue":   {110, 190, 255},
	"blue":       {0, 70, 255},
	"navy":       {0, 0, 128},
	"purple":     {150, 0, 220},
	"violet":     {170, 60, 255},
	"magenta":    {255, 0, 200},
	"hot pink":   {255, 60, 160},
	"pink":       {255, 120, 180},
	"lavender":   {190, 160, 255},
	"salmon":     {255, 140, 120},
	"coral":      {255, 110, 80},
}

// colorNamesByLength is the fixed lookup order.
var colorNamesByLength = func() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// ExtractNamedColors returns every distinct literal color mentioned in the
// text, longest names consumed first so "warm white" is one color, not
// "white" plus a leftover. Shared with the defaults engine's free-form
// color-preference step.
func ExtractNamedColors(text string) []intent.RGB {
	normalized := strings.ToLower(text)
	var out []intent.RGB
	for _, name := range colorNamesByLength {
		if containsWord(normalized, name) {
			out = append(out, namedColors[name])
			normalized = strings.ReplaceAll(normalized, name, " ")
		}
		if len(out) == 3 {
			break
		}
	}
	return out
}

// findNamedColor returns the first (longest) color name contained in the
// normalized text.
func findNamedColor(normalized string) (string, intent.RGB, bool) {
	for _, name := range colorNamesByLength {
		if containsWord(normalized, name) {
			return name, namedColors[name], true
		}
	}
	return "", intent.RGB{}, false
}

// containsWord is a word-boundary substring check without regex cost:
// the match must not be glued to letters on either side, so "red" does
// not fire inside "bored".
func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(s[start-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(s) {
			return false
		}
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
