package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/signals"
)

func TestSession_SnapshotsAreIndependent(t *testing.T) {
	a, b := New(), New()
	if a.ID == b.ID {
		t.Fatal("sessions must get distinct ids")
	}

	a.SetClassification(signals.Result{Classification: signals.ClassEdit})
	if b.Classification() != nil {
		t.Error("classification leaked across sessions")
	}
	if got := a.Classification(); got == nil || got.Classification != signals.ClassEdit {
		t.Errorf("classification = %+v", got)
	}
}

func TestSession_BeforeFirstCommand(t *testing.T) {
	s := New()
	if s.Classification() != nil || s.Suggestion() != nil {
		t.Error("fresh session must report nil snapshots")
	}
	if got := s.RecentSuggestions(); len(got) != 0 {
		t.Errorf("fresh session has %d recent suggestions", len(got))
	}
}

func TestSession_SuggestionReplacedWholesale(t *testing.T) {
	s := New()
	s.SetSuggestion(intent.ResolvedSuggestion{EffectID: "twinkle"})
	first := s.Suggestion()

	s.SetSuggestion(intent.ResolvedSuggestion{EffectID: "chase"})
	if first.EffectID != "twinkle" {
		t.Error("earlier snapshot mutated by a later write")
	}
	if got := s.Suggestion(); got.EffectID != "chase" {
		t.Errorf("suggestion = %s, want chase", got.EffectID)
	}
}

func TestSession_RecentSuggestionRingIsBounded(t *testing.T) {
	s := New()
	for i := 0; i < defaultHistorySize+3; i++ {
		s.RememberSuggested(fmt.Sprintf("pattern %d", i))
	}
	got := s.RecentSuggestions()
	if len(got) != defaultHistorySize {
		t.Fatalf("ring holds %d, want %d", len(got), defaultHistorySize)
	}
	if got[0] != "pattern 3" || got[len(got)-1] != fmt.Sprintf("pattern %d", defaultHistorySize+2) {
		t.Errorf("ring lost order: %v", got)
	}

	s.RememberSuggested("")
	if len(s.RecentSuggestions()) != defaultHistorySize {
		t.Error("empty descriptions must be ignored")
	}
}

func TestSession_TurnRingIsBounded(t *testing.T) {
	s := New()
	for i := 0; i < defaultHistorySize+2; i++ {
		s.RememberTurn(fmt.Sprintf("User: turn %d", i))
	}
	got := s.Turns()
	if len(got) != defaultHistorySize {
		t.Fatalf("turn ring holds %d, want %d", len(got), defaultHistorySize)
	}
	if got[0] != "User: turn 2" || got[len(got)-1] != fmt.Sprintf("User: turn %d", defaultHistorySize+1) {
		t.Errorf("turn ring lost order: %v", got)
	}

	s.RememberTurn("")
	if len(s.Turns()) != defaultHistorySize {
		t.Error("empty turns must be ignored")
	}
}

func TestSession_ConcurrentReadersAndWriter(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Classification()
				_ = s.Suggestion()
				_ = s.RecentSuggestions()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.SetClassification(signals.Result{})
		s.SetSuggestion(intent.ResolvedSuggestion{})
		s.RememberSuggested("p")
	}
	wg.Wait()
}
