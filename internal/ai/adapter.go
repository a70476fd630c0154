package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/signals"
)

// remoteDefaultConfidence is assumed when the payload omits an explicit
// confidence value.
const remoteDefaultConfidence = 0.90

// RemoteError wraps every failure from the remote tier so the router can
// build a graceful fallback instead of surfacing an opaque error.
type RemoteError struct {
	RawText string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote resolution failed for %q: %v", e.RawText, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Response is the remote tier's output: a normalized intent plus the
// conversational part of the reply. When the reply carried no structured
// payload, Intent.Kind is Unknown and Reply holds the whole text.
type Response struct {
	Intent intent.Intent
	Reply  string
}

// Request carries everything the adapter injects into the prompt beyond
// the command text itself.
type Request struct {
	Text               string
	History            []string // recent user/assistant turns, oldest first
	RecentSuggestions  []string // pattern descriptions to avoid repeating
	ActiveSceneContext string   // empty when nothing is playing
	Hint               *signals.Result
}

// Adapter normalizes remote completions into intents.
type Adapter struct {
	completer Completer
	debug     bool
}

// NewAdapter wraps a completer.
func NewAdapter(c Completer, debug bool) *Adapter {
	return &Adapter{completer: c, debug: debug}
}

// payload is the structured block the model is asked to embed in its reply.
type payload struct {
	Kind       string   `json:"kind"`
	On         *bool    `json:"on,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"` // 0..1
	Colors     []string `json:"colors,omitempty"`     // RRGGBB
	EffectID   string   `json:"effectId,omitempty"`
	EffectName string   `json:"effectName,omitempty"`
	SceneName  string   `json:"sceneName,omitempty"`
	Speed      *float64 `json:"speed,omitempty"` // 0..1
	Confidence *float64 `json:"confidence,omitempty"`
	Reply      string   `json:"reply,omitempty"`
}

// Resolve runs one remote completion and normalizes the result. Every
// failure comes back as a *RemoteError; a reply without a payload is not a
// failure, it is a conversational response.
func (a *Adapter) Resolve(ctx context.Context, req Request) (Response, error) {
	prompt := a.buildPrompt(req)
	if a.debug {
		fmt.Printf("Remote prompt length: %d characters\n", len(prompt))
	}

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return Response{}, &RemoteError{RawText: req.Text, Err: err}
	}

	block := extractJSONPayload(raw)
	if block == "" {
		// Pure conversational reply, no intent.
		return Response{
			Intent: intent.Unknown(req.Text, intent.TierRemote),
			Reply:  strings.TrimSpace(raw),
		}, nil
	}

	var p payload
	if err := json.Unmarshal([]byte(block), &p); err != nil {
		// Malformed payload is treated the same as no payload.
		return Response{
			Intent: intent.Unknown(req.Text, intent.TierRemote),
			Reply:  strings.TrimSpace(raw),
		}, nil
	}

	return Response{
		Intent: normalize(p, req.Text),
		Reply:  p.Reply,
	}, nil
}

// normalize maps a payload onto the typed intent shape shared with Tier 1.
func normalize(p payload, rawText string) intent.Intent {
	out := intent.Intent{
		Kind:       intent.KindUnknown,
		RawText:    rawText,
		Tier:       intent.TierRemote,
		Confidence: remoteDefaultConfidence,
	}
	if p.Confidence != nil && *p.Confidence > 0 && *p.Confidence <= 1 {
		out.Confidence = *p.Confidence
	}

	switch strings.ToLower(strings.TrimSpace(p.Kind)) {
	case "power":
		on := true
		if p.On != nil {
			on = *p.On
		}
		out.Kind = intent.KindPower
		out.Power = &intent.PowerParams{On: on}
	case "brightness":
		if p.Brightness == nil {
			break
		}
		out.Kind = intent.KindBrightness
		out.Brightness = &intent.BrightnessParams{Value: int(clamp01(*p.Brightness)*255 + 0.5)}
	case "solid_color", "color":
		if len(p.Colors) == 0 {
			break
		}
		c, err := scenes.ParseHex(p.Colors[0])
		if err != nil {
			break
		}
		out.Kind = intent.KindSolidColor
		out.SolidColor = &intent.SolidColorParams{RGB: c}
	case "effect":
		if p.EffectID == "" && p.EffectName == "" {
			break
		}
		eff := &intent.EffectParams{ID: p.EffectID, Name: p.EffectName}
		if p.Speed != nil {
			v := int(clamp01(*p.Speed)*255 + 0.5)
			eff.Speed = &v
		}
		if p.Brightness != nil {
			v := int(clamp01(*p.Brightness)*255 + 0.5)
			eff.Brightness = &v
		}
		for _, h := range p.Colors {
			c, err := scenes.ParseHex(h)
			if err != nil {
				continue
			}
			eff.Colors = append(eff.Colors, c)
		}
		out.Kind = intent.KindEffect
		out.Effect = eff
	case "scene":
		if p.SceneName == "" {
			break
		}
		out.Kind = intent.KindScene
		out.Scene = &intent.SceneParams{Name: p.SceneName}
	}

	if out.Kind == intent.KindUnknown {
		out.Confidence = 0
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// buildPrompt assembles the context block: user profile details from
// config, the recent-suggestion ring, the active scene and the
// classification hint, followed by the reply contract.
func (a *Adapter) buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are the lighting assistant for a permanent exterior LED installation.\n")
	b.WriteString("Interpret the user's request and reply with a short conversational sentence ")
	b.WriteString("plus ONE JSON object describing the lighting command.\n\n")

	if loc := viper.GetString("profile.location"); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	fmt.Fprintf(&b, "Date: %s\n", time.Now().Format("2006-01-02"))
	if interests := viper.GetStringSlice("profile.interests"); len(interests) > 0 {
		fmt.Fprintf(&b, "User interests: %s\n", strings.Join(interests, ", "))
	}

	if len(req.RecentSuggestions) > 0 {
		b.WriteString("\nRecently suggested patterns (do not repeat these):\n")
		for _, s := range req.RecentSuggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if req.ActiveSceneContext != "" {
		fmt.Fprintf(&b, "\nCurrently playing: %s\n", req.ActiveSceneContext)
	}

	if req.Hint != nil {
		switch req.Hint.Classification {
		case signals.ClassEdit:
			b.WriteString("\nClassification hint: the user is EDITING the current scene. Keep unstated parameters as they are.\n")
		case signals.ClassNewScene:
			b.WriteString("\nClassification hint: the user wants a FRESH scene. Do not anchor on the current one.\n")
		default:
			b.WriteString("\nClassification hint: ambiguous; prefer the reading that needs the fewest assumptions.\n")
		}
	}

	if len(req.History) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, turn := range req.History {
			fmt.Fprintf(&b, "%s\n", turn)
		}
	}

	b.WriteString("\nJSON contract: {\"kind\": \"power|brightness|solid_color|effect|scene\", ")
	b.WriteString("\"on\": bool, \"brightness\": 0..1, \"colors\": [\"RRGGBB\"], ")
	b.WriteString("\"effectId\": string, \"effectName\": string, \"sceneName\": string, ")
	b.WriteString("\"speed\": 0..1, \"confidence\": 0..1, \"reply\": string}. ")
	b.WriteString("Include only the fields that apply.\n\n")

	fmt.Fprintf(&b, "User request: %s\n", req.Text)
	return b.String()
}
