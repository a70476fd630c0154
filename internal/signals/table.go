// Package signals implements the weighted keyword table and the
// edit-vs-new-scene intent classifier that sits at the front of the
// command pipeline.
package signals

import (
	"regexp"
	"strings"
)

// Entry is one weighted signal. Plain entries match as substrings of the
// normalized text; regex entries are compiled once at init.
type Entry struct {
	Pattern string
	IsRegex bool
	Weight  float64
}

var regexCache = map[string]*regexp.Regexp{}

func init() {
	for _, set := range [][]Entry{editSignals, newSceneSignals, ambiguousSignals} {
		for _, e := range set {
			if e.IsRegex {
				regexCache[e.Pattern] = regexp.MustCompile(e.Pattern)
			}
		}
	}
}

// Matches reports whether the entry fires on already-normalized text.
func (e Entry) Matches(normalized string) bool {
	if e.IsRegex {
		return regexCache[e.Pattern].MatchString(normalized)
	}
	return strings.Contains(normalized, e.Pattern)
}

// editSignals favor modifying whatever is currently playing.
var editSignals = []Entry{
	{Pattern: "make it", Weight: 0.30},
	{Pattern: "make them", Weight: 0.30},
	{Pattern: "a bit", Weight: 0.20},
	{Pattern: "a little", Weight: 0.20},
	{Pattern: "slightly", Weight: 0.20},
	{Pattern: "slower", Weight: 0.35},
	{Pattern: "faster", Weight: 0.35},
	{Pattern: "brighter", Weight: 0.35},
	{Pattern: "dimmer", Weight: 0.35},
	{Pattern: "speed up", Weight: 0.35},
	{Pattern: "slow down", Weight: 0.35},
	{Pattern: "too bright", Weight: 0.35},
	{Pattern: "too dark", Weight: 0.35},
	{Pattern: "too fast", Weight: 0.35},
	{Pattern: "too slow", Weight: 0.35},
	{Pattern: "tone it down", Weight: 0.30},
	{Pattern: "turn it up", Weight: 0.25},
	{Pattern: "change the", Weight: 0.25},
	{Pattern: "adjust", Weight: 0.25},
	{Pattern: "keep the", Weight: 0.25},
	{Pattern: `^(more|less)\b`, IsRegex: true, Weight: 0.30},
	{Pattern: `^same\b.*\bbut\b`, IsRegex: true, Weight: 0.35},
}

// newSceneSignals favor replacing the current scene wholesale.
var newSceneSignals = []Entry{
	{Pattern: "something", Weight: 0.35},
	{Pattern: "show me", Weight: 0.30},
	{Pattern: "i want", Weight: 0.25},
	{Pattern: "give me", Weight: 0.30},
	{Pattern: "put on", Weight: 0.30},
	{Pattern: "let's do", Weight: 0.30},
	{Pattern: "lets do", Weight: 0.30},
	{Pattern: "surprise me", Weight: 0.40},
	{Pattern: "scene", Weight: 0.25},
	{Pattern: "theme", Weight: 0.25},
	{Pattern: "game day", Weight: 0.35},
	{Pattern: "movie night", Weight: 0.35},
	{Pattern: "party", Weight: 0.25},
	{Pattern: `\bmode\b`, IsRegex: true, Weight: 0.30},
	{Pattern: `\bvibes?\b`, IsRegex: true, Weight: 0.30},
}

// ambiguousSignals could go either way; half their weight lands on both
// scores.
var ambiguousSignals = []Entry{
	{Pattern: "chill", Weight: 0.20},
	{Pattern: "cozy", Weight: 0.20},
	{Pattern: "calm", Weight: 0.20},
	{Pattern: "relaxing", Weight: 0.20},
	{Pattern: "romantic", Weight: 0.20},
	{Pattern: "warmer", Weight: 0.20},
	{Pattern: "cooler", Weight: 0.20},
	{Pattern: "festive", Weight: 0.20},
	{Pattern: "holiday", Weight: 0.15},
	{Pattern: "colorful", Weight: 0.15},
}

// hueWords are bare color words recognized by the single-hue ambiguity
// check. Kept in sync with the parser's literal color table.
var hueWords = map[string]bool{
	"red": true, "orange": true, "yellow": true, "green": true,
	"blue": true, "purple": true, "pink": true, "white": true,
	"teal": true, "cyan": true, "magenta": true, "gold": true,
}

// stopwords are stripped before the single-hue check so "make the lights
// blue" still reduces to "blue".
var stopwords = map[string]bool{
	"make": true, "it": true, "the": true, "them": true, "all": true,
	"lights": true, "light": true, "turn": true, "set": true, "to": true,
	"go": true, "please": true, "my": true,
}
