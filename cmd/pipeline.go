package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/ai"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/defaults"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/habits"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/router"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/session"
)

// pipeline bundles everything a resolving command needs.
type pipeline struct {
	router  *router.Router
	store   *scenes.Store
	habits  *habits.Store
	tracker *habits.Tracker
	log     *zap.Logger
}

func (p *pipeline) close() {
	if p.habits != nil {
		p.habits.Close()
	}
	_ = p.log.Sync()
}

// newPipeline wires the full resolution stack from config: scene store,
// habits store and tracker, remote client, defaults engine and router.
func newPipeline() (*pipeline, error) {
	debug := viper.GetBool("debug")
	log, err := newLogger(debug)
	if err != nil {
		return nil, err
	}

	store, err := scenes.Load(configPath("scenes.path", ".lumina-scenes.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene library: %w", err)
	}
	if debug {
		fmt.Printf("Loaded %d saved scenes\n", len(store.Scenes()))
	}

	hstore, err := habits.OpenStore(configPath("habits.db", ".lumina-habits.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open habits store: %w", err)
	}
	tracker := habits.NewTracker(hstore, viper.GetString("user_id"), log)

	engine := defaults.NewEngine(store, tracker, log)

	var remote router.Remote
	provider := viper.GetString("ai.provider")
	if provider != "" {
		apiKey := viper.GetString(fmt.Sprintf("ai.providers.%s.api_key", provider))
		client, err := ai.NewClient(provider, apiKey, debug)
		if err != nil {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
		remote = ai.NewAdapter(client, debug)
	} else if debug {
		fmt.Println("No ai.provider configured; running local-only")
	}

	r := router.New(store, remote, engine, session.New(), log)
	return &pipeline{router: r, store: store, habits: hstore, tracker: tracker, log: log}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// configPath reads a path from config, defaulting into the home directory.
func configPath(key, defaultName string) string {
	if p := viper.GetString(key); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultName
	}
	return filepath.Join(home, defaultName)
}

// environment assembles the ambient state for the defaults engine from
// config, estimating darkness from the clock when not set explicitly.
func environment() defaults.Environment {
	now := time.Now()
	darkness := viper.GetFloat64("darkness")
	if darkness < 0 || darkness > 1 {
		darkness = estimateDarkness(now)
	}
	return defaults.Environment{
		Darkness:   darkness,
		Now:        now,
		QuietStart: viper.GetString("quiet_hours.start"),
		QuietEnd:   viper.GetString("quiet_hours.end"),
		HOACap:     viper.GetBool("hoa_cap"),
	}
}

// estimateDarkness is a coarse clock-based stand-in for a real ambient
// light reading: full day 08-17, full night 21-05, linear ramps between.
func estimateDarkness(now time.Time) float64 {
	h := float64(now.Hour()) + float64(now.Minute())/60.0
	switch {
	case h >= 8 && h < 17:
		return 0
	case h >= 21 || h < 5:
		return 1
	case h >= 17: // dusk ramp 17:00 -> 21:00
		return (h - 17) / 4
	default: // dawn ramp 05:00 -> 08:00
		return 1 - (h-5)/3
	}
}
