// Package session scopes the mutable pieces of a conversation: the latest
// classification, the latest enriched suggestion and the ring of recently
// suggested patterns. One Session per conversation; nothing here is
// process-global.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/signals"
)

// defaultHistorySize bounds the recent-suggestion ring. Large enough to
// stop the remote model repeating itself, small enough to keep prompts
// short.
const defaultHistorySize = 8

// Session is a single-writer, multiple-reader snapshot holder. Writes are
// serialized per session by the router; reads may happen from any
// goroutine.
type Session struct {
	ID string

	mu             sync.RWMutex
	classification *signals.Result
	suggestion     *intent.ResolvedSuggestion
	recent         []string
	turns          []string
	recentCap      int
}

// New creates a session with a fresh id and the default history depth.
func New() *Session {
	return &Session{ID: uuid.NewString(), recentCap: defaultHistorySize}
}

// SetClassification publishes the latest classification snapshot.
func (s *Session) SetClassification(r signals.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := r
	s.classification = &copied
}

// Classification returns the most recent classification, or nil before the
// first routed command.
func (s *Session) Classification() *signals.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classification
}

// SetSuggestion publishes the latest enriched suggestion snapshot.
func (s *Session) SetSuggestion(sg intent.ResolvedSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := sg
	s.suggestion = &copied
}

// Suggestion returns the most recent enriched suggestion, or nil.
func (s *Session) Suggestion() *intent.ResolvedSuggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suggestion
}

// RememberSuggested appends a pattern description to the bounded ring of
// recent remote suggestions.
func (s *Session) RememberSuggested(description string) {
	if description == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, description)
	if len(s.recent) > s.recentCap {
		s.recent = s.recent[len(s.recent)-s.recentCap:]
	}
}

// RecentSuggestions returns the ring oldest-first.
func (s *Session) RecentSuggestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

// RememberTurn appends one conversation turn to the bounded history ring.
func (s *Session) RememberTurn(turn string) {
	if turn == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	if len(s.turns) > s.recentCap {
		s.turns = s.turns[len(s.turns)-s.recentCap:]
	}
}

// Turns returns the conversation history oldest-first.
func (s *Session) Turns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.turns))
	copy(out, s.turns)
	return out
}
