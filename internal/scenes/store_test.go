package scenes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "E31837", want: "E31837"},
		{name: "leading hash", in: "#ffb81c", want: "FFB81C"},
		{name: "whitespace", in: "  00ff00 ", want: "00FF00"},
		{name: "too short", in: "fff", wantErr: true},
		{name: "not hex", in: "nothex", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) parsed to %v, want error", tt.in, c)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.in, err)
			}
			if c.Hex() != tt.want {
				t.Errorf("ParseHex(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}

func TestLoad_MissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Scenes()) != 0 {
		t.Errorf("missing file produced %d scenes", len(s.Scenes()))
	}
}

func TestLoad_Library(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	lib := `scenes:
  - id: s1
    name: Game Night
    colors: ["E31837", "FFB81C"]
    effect_id: chase
    favorite: true
  - id: s2
    name: Calm Evening
    colors: ["6EBEFF"]
    effect_id: fade
`
	if err := os.WriteFile(path, []byte(lib), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := s.Scenes(); len(got) != 2 || got[0].Name != "Calm Evening" {
		t.Errorf("Scenes() = %v, want two entries ordered by name", got)
	}
	if favs := s.FavoriteNames(); len(favs) != 1 || favs[0] != "Game Night" {
		t.Errorf("FavoriteNames() = %v", favs)
	}

	sc, ok := s.ByName("game night")
	if !ok || sc.ID != "s1" {
		t.Errorf("ByName is case-insensitive: got %+v/%v", sc, ok)
	}
	if cols := sc.RGBColors(); len(cols) != 2 || cols[0].Hex() != "E31837" {
		t.Errorf("RGBColors() = %v", cols)
	}

	if _, ok := s.ByID("s3"); ok {
		t.Error("ByID matched a missing id")
	}
}

func TestRGBColors_SkipsBadEntries(t *testing.T) {
	sc := Scene{Colors: []string{"E31837", "banana", "FFB81C"}}
	if cols := sc.RGBColors(); len(cols) != 2 {
		t.Errorf("RGBColors() = %v, want the two valid entries", cols)
	}
}
