package habits

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func logAdjustments(t *testing.T, tr *Tracker, n int, darkness, suggested, adjusted float64) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := tr.RecordAdjustment(context.Background(), "brightness", suggested, adjusted, ContextSnapshot{
			Darkness: darkness,
			When:     time.Now().UTC().Add(-time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func TestTracker_LearnsNightBrightnessBias(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	// The user keeps halving what we suggest after dark.
	logAdjustments(t, tr, 6, 0.8, 0.8, 0.4)

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))

	require.InDelta(t, 0.5, tr.BrightnessBias(0.9), 1e-9)
	// The day bucket stays untouched.
	require.InDelta(t, 1.0, tr.BrightnessBias(0.1), 1e-9)
}

func TestTracker_TooFewEventsLearnsNothing(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	logAdjustments(t, tr, minTotalEvents-1, 0.8, 0.8, 0.4)

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))
	require.InDelta(t, 1.0, tr.BrightnessBias(0.9), 1e-9)
}

func TestTracker_DeadbandSuppressesTinyBias(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	// 3% nudges are noise, not a habit.
	logAdjustments(t, tr, 6, 0.8, 1.0, 1.03)

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))
	require.InDelta(t, 1.0, tr.BrightnessBias(0.9), 1e-9)
}

func TestTracker_AcceptedEventsDoNotCount(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	for i := 0; i < 10; i++ {
		require.NoError(t, tr.RecordAccepted(context.Background(), "brightness", 0.8, ContextSnapshot{
			Darkness: 0.8,
			When:     time.Now().UTC(),
		}))
	}

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))
	require.InDelta(t, 1.0, tr.BrightnessBias(0.9), 1e-9)
}

func TestTracker_EffectPreferences(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	record := func(effectID string, times int) {
		for i := 0; i < times; i++ {
			require.NoError(t, tr.RecordAdjustment(context.Background(), "effect", 0, 0, ContextSnapshot{
				EffectID: effectID,
				When:     time.Now().UTC(),
			}))
		}
	}
	record("twinkle", 4)
	record("chase", 2)

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))

	prefs := tr.EffectPreferences()
	require.Len(t, prefs, 2)
	require.Greater(t, prefs["twinkle"], prefs["chase"])
}

func TestTracker_SingleEffectIsNotAPreference(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	for i := 0; i < 6; i++ {
		require.NoError(t, tr.RecordAdjustment(context.Background(), "effect", 0, 0, ContextSnapshot{
			EffectID: "twinkle",
			When:     time.Now().UTC(),
		}))
	}

	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))
	require.Empty(t, tr.EffectPreferences())
}

func TestTracker_CacheInvalidatesAfterAnalysis(t *testing.T) {
	tr := NewTracker(testStore(t), "u1", zap.NewNop())

	// First read warms the cache with no habits.
	require.InDelta(t, 1.0, tr.BrightnessBias(0.9), 1e-9)

	logAdjustments(t, tr, 6, 0.8, 0.8, 0.4)
	require.NoError(t, tr.AnalyzeAndSaveHabits(context.Background()))

	// The stale generation is gone without any restart.
	require.InDelta(t, 0.5, tr.BrightnessBias(0.9), 1e-9)
}

func TestStore_RecentEventsWindow(t *testing.T) {
	s := testStore(t)

	old := Event{UserID: "u1", Type: "adjusted", Parameter: "brightness",
		CreatedAt: time.Now().UTC().AddDate(0, 0, -40)}
	fresh := Event{UserID: "u1", Type: "adjusted", Parameter: "brightness",
		CreatedAt: time.Now().UTC()}
	require.NoError(t, s.LogEvent(context.Background(), old))
	require.NoError(t, s.LogEvent(context.Background(), fresh))

	events, err := s.RecentEvents(context.Background(), "u1", 30)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

// habitsStub is an in-memory HistoryStore whose Habits call can run a hook
// mid-load, to exercise load/invalidate interleavings.
type habitsStub struct {
	records []BiasRecord
	loads   int
	onLoad  func()
}

func (s *habitsStub) LogEvent(context.Context, Event) error                      { return nil }
func (s *habitsStub) RecentEvents(context.Context, string, int) ([]Event, error) { return nil, nil }
func (s *habitsStub) SaveHabit(context.Context, string, BiasRecord) error        { return nil }

func (s *habitsStub) Habits(context.Context, string, int) ([]BiasRecord, error) {
	s.loads++
	if s.onLoad != nil {
		s.onLoad()
	}
	out := make([]BiasRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func TestTracker_SupersededLoadDoesNotStick(t *testing.T) {
	stub := &habitsStub{records: []BiasRecord{
		{Type: "brightness_bias", Bucket: "night", Value: 0.8},
	}}
	tr := NewTracker(stub, "u1", zap.NewNop())

	// An invalidation lands while the first load is in flight: the load
	// serves the values it read but must not install over the newer
	// generation.
	stub.onLoad = func() {
		stub.records = []BiasRecord{{Type: "brightness_bias", Bucket: "night", Value: 0.5}}
		tr.invalidate()
	}
	require.InDelta(t, 0.8, tr.BrightnessBias(0.9), 1e-9)
	stub.onLoad = nil

	// The next read belongs to the newer generation and reloads.
	require.InDelta(t, 0.5, tr.BrightnessBias(0.9), 1e-9)
	require.Equal(t, 2, stub.loads)
}
