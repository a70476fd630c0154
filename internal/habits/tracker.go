package habits

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Analysis thresholds. Fewer than minTotalEvents adjustment events means
// there is nothing trustworthy to learn yet.
const (
	analysisWindowDays = 30
	minTotalEvents     = 5
	minBucketSamples   = 3
	nightDarkness      = 0.60
	biasDeadband       = 0.05
	maxEffectPrefs     = 5
	minDistinctEffects = 2
)

// HistoryStore is the slice of the usage store the tracker needs.
type HistoryStore interface {
	LogEvent(ctx context.Context, e Event) error
	RecentEvents(ctx context.Context, userID string, days int) ([]Event, error)
	SaveHabit(ctx context.Context, userID string, r BiasRecord) error
	Habits(ctx context.Context, userID string, limit int) ([]BiasRecord, error)
}

// cacheState is one immutable generation of learned values. Readers grab
// the whole pointer, so a concurrent invalidation can never expose a torn
// mix of old and new values.
type cacheState struct {
	version     uint64
	loaded      bool
	brightness  map[string]float64 // bucket -> bias
	effectPrefs map[string]float64 // effect id -> weight
}

// Tracker records accept/adjust events and serves learned biases from a
// versioned in-process cache, invalidated once per successful analysis.
type Tracker struct {
	store  HistoryStore
	userID string
	log    *zap.Logger

	mu    sync.RWMutex
	cache *cacheState
}

// NewTracker builds a tracker for one user.
func NewTracker(store HistoryStore, userID string, log *zap.Logger) *Tracker {
	return &Tracker{
		store:  store,
		userID: userID,
		log:    log,
		cache:  &cacheState{},
	}
}

// ContextSnapshot captures the conditions under which a suggestion was
// made, for later bucketing.
type ContextSnapshot struct {
	Darkness float64
	EffectID string
	When     time.Time
}

// RecordAdjustment logs that the user changed a suggested value.
func (t *Tracker) RecordAdjustment(ctx context.Context, parameter string, suggested, adjusted float64, snap ContextSnapshot) error {
	return t.store.LogEvent(ctx, Event{
		UserID:    t.userID,
		Type:      "adjusted",
		Parameter: parameter,
		Suggested: suggested,
		Adjusted:  adjusted,
		EffectID:  snap.EffectID,
		Darkness:  snap.Darkness,
		CreatedAt: snap.When,
	})
}

// RecordAccepted logs that the user took a suggestion as-is.
func (t *Tracker) RecordAccepted(ctx context.Context, parameter string, suggested float64, snap ContextSnapshot) error {
	return t.store.LogEvent(ctx, Event{
		UserID:    t.userID,
		Type:      "accepted",
		Parameter: parameter,
		Suggested: suggested,
		Adjusted:  suggested,
		EffectID:  snap.EffectID,
		Darkness:  snap.Darkness,
		CreatedAt: snap.When,
	})
}

// BrightnessBias returns the learned multiplicative correction for the
// bucket containing darkness, or 1.0 when none was learned.
func (t *Tracker) BrightnessBias(darkness float64) float64 {
	c := t.snapshot()
	bucket := "day"
	if darkness >= nightDarkness {
		bucket = "night"
	}
	if v, ok := c.brightness[bucket]; ok {
		return v
	}
	return 1.0
}

// EffectPreferences returns the learned effect-id weights, empty when
// nothing was mined yet.
func (t *Tracker) EffectPreferences() map[string]float64 {
	c := t.snapshot()
	out := make(map[string]float64, len(c.effectPrefs))
	for k, v := range c.effectPrefs {
		out[k] = v
	}
	return out
}

// snapshot lazily loads persisted habits on first read after an
// invalidation.
func (t *Tracker) snapshot() *cacheState {
	t.mu.RLock()
	c := t.cache
	t.mu.RUnlock()
	if c.loaded {
		return c
	}

	records, err := t.store.Habits(context.Background(), t.userID, 32)
	if err != nil {
		t.log.Warn("failed to load habits, serving neutral biases", zap.Error(err))
		records = nil
	}

	next := &cacheState{
		version:     c.version,
		loaded:      true,
		brightness:  map[string]float64{},
		effectPrefs: map[string]float64{},
	}
	for _, r := range records {
		switch r.Type {
		case "brightness_bias":
			next.brightness[r.Bucket] = r.Value
		case "effect_preference":
			next.effectPrefs[r.Bucket] = r.Value
		}
	}

	t.mu.Lock()
	// Another reader may have loaded concurrently, or an invalidation may
	// have opened a newer generation while this load ran. Install only
	// when the generation this load started from is still current.
	if !t.cache.loaded && t.cache.version == next.version {
		t.cache = next
	}
	c = t.cache
	t.mu.Unlock()
	if !c.loaded {
		// Superseded by a newer generation; serve what was just read and
		// let the next call reload.
		c = next
	}
	return c
}

// invalidate bumps the cache generation so the next read reloads.
func (t *Tracker) invalidate() {
	t.mu.Lock()
	t.cache = &cacheState{version: t.cache.version + 1}
	t.mu.Unlock()
}

// AnalyzeAndSaveHabits is the periodic batch step: it pulls the last 30
// days of events, mines brightness biases per day/night bucket and the
// top adjusted-to effects, persists what passed the thresholds and
// invalidates the read cache exactly once on success.
func (t *Tracker) AnalyzeAndSaveHabits(ctx context.Context) error {
	events, err := t.store.RecentEvents(ctx, t.userID, analysisWindowDays)
	if err != nil {
		return err
	}

	var adjustments []Event
	for _, e := range events {
		if e.Type == "adjusted" {
			adjustments = append(adjustments, e)
		}
	}
	if len(adjustments) < minTotalEvents {
		t.log.Debug("not enough adjustment events to learn from",
			zap.Int("events", len(adjustments)), zap.Int("required", minTotalEvents))
		return nil
	}

	saved := 0
	for bucket, ratios := range brightnessRatiosByBucket(adjustments) {
		if len(ratios) < minBucketSamples {
			continue
		}
		mean := meanOf(ratios)
		if math.Abs(mean-1.0) <= biasDeadband {
			continue
		}
		if err := t.store.SaveHabit(ctx, t.userID, BiasRecord{
			Type:        "brightness_bias",
			Bucket:      bucket,
			Value:       mean,
			SampleCount: len(ratios),
		}); err != nil {
			return err
		}
		saved++
	}

	for _, pref := range mineEffectPreferences(adjustments) {
		if err := t.store.SaveHabit(ctx, t.userID, pref); err != nil {
			return err
		}
		saved++
	}

	t.invalidate()
	t.log.Info("habit analysis complete",
		zap.Int("adjustments", len(adjustments)), zap.Int("habits_saved", saved))
	return nil
}

// brightnessRatiosByBucket groups adjusted/suggested ratios into the
// night (darkness >= 0.6) and day buckets.
func brightnessRatiosByBucket(adjustments []Event) map[string][]float64 {
	out := map[string][]float64{}
	for _, e := range adjustments {
		if e.Parameter != "brightness" || e.Suggested <= 0 {
			continue
		}
		bucket := "day"
		if e.Darkness >= nightDarkness {
			bucket = "night"
		}
		out[bucket] = append(out[bucket], e.Adjusted/e.Suggested)
	}
	return out
}

func meanOf(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// mineEffectPreferences counts adjusted-to effect ids and keeps the top
// five, provided at least two distinct ids were seen.
func mineEffectPreferences(adjustments []Event) []BiasRecord {
	counts := map[string]int{}
	for _, e := range adjustments {
		if e.Parameter == "effect" && e.EffectID != "" {
			counts[e.EffectID]++
		}
	}
	if len(counts) < minDistinctEffects {
		return nil
	}

	type pair struct {
		id    string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	total := 0
	for id, n := range counts {
		pairs = append(pairs, pair{id, n})
		total += n
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].id < pairs[j].id
	})
	if len(pairs) > maxEffectPrefs {
		pairs = pairs[:maxEffectPrefs]
	}

	out := make([]BiasRecord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, BiasRecord{
			Type:        "effect_preference",
			Bucket:      p.id,
			Value:       float64(p.count) / float64(total),
			SampleCount: p.count,
		})
	}
	return out
}
