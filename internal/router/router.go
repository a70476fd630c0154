// Package router is the single entry point for natural-language lighting
// commands. It classifies the phrase, tries the local deterministic tier,
// escalates to the remote tier at most once, and enriches the winning
// intent into a fully-specified suggestion.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/ai"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/defaults"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/parser"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/session"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/signals"
)

// Remote is the slice of the remote adapter the router depends on. Tests
// substitute a stub.
type Remote interface {
	Resolve(ctx context.Context, req ai.Request) (ai.Response, error)
}

// Router wires the two resolution tiers, the classifier, the defaults
// engine and the per-session snapshots together.
type Router struct {
	store   *scenes.Store
	remote  Remote
	engine  *defaults.Engine
	session *session.Session
	log     *zap.Logger
}

// New builds a router. remote may be nil when no API key is configured;
// the router then degrades to Tier 1 plus the fallback path.
func New(store *scenes.Store, remote Remote, engine *defaults.Engine, sess *session.Session, log *zap.Logger) *Router {
	return &Router{store: store, remote: remote, engine: engine, session: sess, log: log}
}

// Result is one routed command's outcome. Exactly one of Suggestion and
// Fallback is set for actionable commands; both are nil for navigation,
// power-off and pure conversation.
type Result struct {
	Intent     intent.Intent
	Reply      string
	Suggestion *intent.ResolvedSuggestion
	Fallback   *Fallback
}

// Route resolves one phrase end to end. The remote tier is consulted at
// most once, and only when the local tier is not confident enough. Remote
// failures never surface as errors; they become a Fallback in the result.
func (r *Router) Route(ctx context.Context, text string, env defaults.Environment) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty command")
	}

	cls := signals.Classify(text, r.signalContext())
	r.session.SetClassification(cls)
	if sug := r.session.Suggestion(); sug != nil {
		cur := sug.Brightness
		env.CurrentBrightness = &cur
	}

	local := parser.ParseLocal(text, r.store.Scenes())
	r.log.Debug("local tier resolved",
		zap.String("kind", string(local.Kind)),
		zap.Float64("confidence", local.Confidence))

	chosen := local
	reply := ""
	if !local.IsHighConfidence() {
		if r.remote == nil {
			r.rememberTurns(text, "")
			return r.fallbackResult(text, local), nil
		}
		resp, err := r.remote.Resolve(ctx, ai.Request{
			Text:               text,
			History:            r.session.Turns(),
			RecentSuggestions:  r.session.RecentSuggestions(),
			ActiveSceneContext: r.activeSceneContext(),
			Hint:               &cls,
		})
		var remoteErr *ai.RemoteError
		if errors.As(err, &remoteErr) {
			r.log.Warn("remote tier failed, serving fallback", zap.Error(err))
			r.rememberTurns(text, "")
			return r.fallbackResult(text, local), nil
		}
		if err != nil {
			return nil, err
		}
		chosen = resp.Intent
		reply = resp.Reply
	}

	r.rememberTurns(text, reply)
	res := &Result{Intent: chosen, Reply: reply}
	if !needsEnrichment(chosen) {
		return res, nil
	}

	sug := r.engine.Resolve(chosen, cls, text, env)
	r.session.SetSuggestion(sug)
	if chosen.Tier == intent.TierRemote {
		r.session.RememberSuggested(describeSuggestion(sug))
	}
	res.Suggestion = &sug
	return res, nil
}

// rememberTurns appends the exchange to the session's conversation ring,
// which the next remote prompt replays.
func (r *Router) rememberTurns(text, reply string) {
	r.session.RememberTurn("User: " + text)
	if reply != "" {
		r.session.RememberTurn("Assistant: " + reply)
	}
}

// needsEnrichment excludes the intents that carry no lighting parameters
// to fill: navigation, power-off, and text nothing could resolve.
func needsEnrichment(in intent.Intent) bool {
	if in.Kind == intent.KindNavigate || in.Kind == intent.KindUnknown {
		return false
	}
	return !in.IsPowerOff()
}

// signalContext assembles the classifier's view of the live state from
// the last enriched suggestion and the saved-scene store.
func (r *Router) signalContext() signals.Context {
	sctx := signals.Context{
		SavedNames:    r.store.Names(),
		FavoriteNames: r.store.FavoriteNames(),
	}
	if sug := r.session.Suggestion(); sug != nil {
		sctx.SceneActive = true
		sctx.ActiveEffectMoving = sug.Motion != intent.MotionStatic
		sctx.ActiveColorCount = len(sug.Colors)
	}
	return sctx
}

// activeSceneContext renders the last suggestion for the remote prompt.
func (r *Router) activeSceneContext() string {
	sug := r.session.Suggestion()
	if sug == nil {
		return ""
	}
	return describeSuggestion(*sug)
}

func describeSuggestion(s intent.ResolvedSuggestion) string {
	hexes := make([]string, 0, len(s.Colors))
	for _, c := range s.Colors {
		hexes = append(hexes, c.Hex())
	}
	return fmt.Sprintf("effect %s at %d%% brightness, colors %s",
		s.EffectID, int(s.Brightness*100+0.5), strings.Join(hexes, ","))
}
