// Package scenes loads the saved-scene/preset library. The store is
// read-only at runtime: the app writes the library file, the resolution
// pipeline only matches against it.
package scenes

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

// Scene is one saved preset.
type Scene struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Colors   []string `yaml:"colors"` // RRGGBB hex strings
	EffectID string   `yaml:"effect_id"`
	Speed    int      `yaml:"speed"`
	Favorite bool     `yaml:"favorite"`
}

// RGBColors decodes the hex color list, skipping entries that do not parse.
func (s Scene) RGBColors() []intent.RGB {
	out := make([]intent.RGB, 0, len(s.Colors))
	for _, h := range s.Colors {
		c, err := ParseHex(h)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ParseHex decodes RRGGBB with or without a leading #.
func ParseHex(h string) (intent.RGB, error) {
	h = strings.TrimPrefix(strings.TrimSpace(h), "#")
	if len(h) != 6 {
		return intent.RGB{}, fmt.Errorf("invalid hex color %q", h)
	}
	var c intent.RGB
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c[0], &c[1], &c[2]); err != nil {
		return intent.RGB{}, fmt.Errorf("invalid hex color %q: %w", h, err)
	}
	return c, nil
}

type libraryFile struct {
	Scenes []Scene `yaml:"scenes"`
}

// Store holds the loaded scene library.
type Store struct {
	scenes []Scene
}

// Load reads the scene library from a YAML file. A missing file yields an
// empty store, not an error, so a fresh install still resolves commands.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{}, nil
		}
		return nil, fmt.Errorf("failed to read scene library %s: %w", path, err)
	}
	var lib libraryFile
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse scene library %s: %w", path, err)
	}
	return NewStore(lib.Scenes), nil
}

// NewStore wraps an already-materialized scene list.
func NewStore(list []Scene) *Store {
	out := make([]Scene, len(list))
	copy(out, list)
	return &Store{scenes: out}
}

// Scenes returns the library ordered by name.
func (s *Store) Scenes() []Scene {
	out := make([]Scene, len(s.scenes))
	copy(out, s.scenes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every scene name.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.scenes))
	for _, sc := range s.scenes {
		out = append(out, sc.Name)
	}
	return out
}

// FavoriteNames returns the names of favorited scenes only.
func (s *Store) FavoriteNames() []string {
	var out []string
	for _, sc := range s.scenes {
		if sc.Favorite {
			out = append(out, sc.Name)
		}
	}
	return out
}

// ByName finds a scene by case-insensitive exact name match.
func (s *Store) ByName(name string) (Scene, bool) {
	for _, sc := range s.scenes {
		if strings.EqualFold(sc.Name, name) {
			return sc, true
		}
	}
	return Scene{}, false
}

// ByID finds a scene by id.
func (s *Store) ByID(id string) (Scene, bool) {
	for _, sc := range s.scenes {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scene{}, false
}
