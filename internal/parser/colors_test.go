package parser

import (
	"testing"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

func TestExtractNamedColors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string // expected hex values, order-insensitive
	}{
		{
			name: "two plain colors",
			text: "blue and gold please",
			want: []string{"0046FF", "FFBE28"},
		},
		{
			name: "compound name wins over its suffix",
			text: "warm white tonight",
			want: []string{"FFB46B"},
		},
		{
			name: "compound plus plain",
			text: "warm white with a bit of red",
			want: []string{"FFB46B", "FF0000"},
		},
		{
			// Lookup runs longest-name-first, so the three longest color
			// words win when more than three are mentioned.
			name: "caps at three",
			text: "red green blue yellow purple",
			want: []string{"9600DC", "FFDC00", "00C800"},
		},
		{
			name: "word boundaries hold",
			text: "bored and scared tonight",
			want: nil,
		},
		{
			name: "no colors",
			text: "something festive",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNamedColors(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractNamedColors(%q) = %v, want %d colors", tt.text, got, len(tt.want))
			}
			for _, hex := range tt.want {
				if !containsColor(got, hex) {
					t.Errorf("ExtractNamedColors(%q) = %v, missing %s", tt.text, got, hex)
				}
			}
		})
	}
}

func containsColor(cols []intent.RGB, hex string) bool {
	for _, c := range cols {
		if c.Hex() == hex {
			return true
		}
	}
	return false
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s, word string
		want    bool
	}{
		{"make it red", "red", true},
		{"red", "red", true},
		{"bored tonight", "red", false},
		{"redder", "red", false},
		{"red-ish", "red", true},
		{"warm white and red", "warm white", true},
		{"", "red", false},
	}

	for _, tt := range tests {
		if got := containsWord(tt.s, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.s, tt.word, got, tt.want)
		}
	}
}
