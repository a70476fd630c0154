package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare object",
			response: `{"kind":"power","on":false}`,
			want:     `{"kind":"power","on":false}`,
		},
		{
			name:     "object embedded in prose",
			response: `Sure, turning them off. {"kind":"power","on":false} Anything else?`,
			want:     `{"kind":"power","on":false}`,
		},
		{
			name:     "markdown fenced",
			response: "Here you go:\n```json\n{\"kind\":\"scene\",\"sceneName\":\"Game Night\"}\n```",
			want:     `{"kind":"scene","sceneName":"Game Night"}`,
		},
		{
			name:     "braces inside strings survive",
			response: `{"kind":"effect","effectName":"twinkle","reply":"here's {sparkly}"}`,
			want:     `{"kind":"effect","effectName":"twinkle","reply":"here's {sparkly}"}`,
		},
		{
			name:     "nested objects stay balanced",
			response: `prefix {"kind":"effect","extra":{"a":{"b":1}}} suffix`,
			want:     `{"kind":"effect","extra":{"a":{"b":1}}}`,
		},
		{
			name:     "no payload at all",
			response: "I'd love to help, what mood are you after?",
			want:     "",
		},
		{
			name:     "unbalanced braces yield nothing",
			response: `{"kind":"power"`,
			want:     "",
		},
		{
			name:     "empty",
			response: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONPayload(tt.response)
			if got != tt.want {
				t.Errorf("extractJSONPayload(%q) = %q, want %q", tt.response, got, tt.want)
			}
			if got != "" && !json.Valid([]byte(got)) {
				t.Errorf("extracted payload is not valid JSON: %q", got)
			}
		})
	}
}

// stubCompleter returns a canned reply or error.
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestAdapterResolve_NormalizesPayload(t *testing.T) {
	stub := &stubCompleter{reply: `How about this? {"kind":"effect","effectId":"twinkle","colors":["FF0000","0000FF"],"brightness":0.5,"speed":0.4,"confidence":0.93,"reply":"Twinkling red and blue."}`}
	a := NewAdapter(stub, false)

	resp, err := a.Resolve(context.Background(), Request{Text: "something twinkly"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	in := resp.Intent
	if in.Kind != intent.KindEffect {
		t.Fatalf("kind = %s, want %s", in.Kind, intent.KindEffect)
	}
	if in.Tier != intent.TierRemote {
		t.Errorf("tier = %s, want %s", in.Tier, intent.TierRemote)
	}
	if in.Confidence != 0.93 {
		t.Errorf("confidence = %.2f, want 0.93", in.Confidence)
	}
	if in.Effect.ID != "twinkle" {
		t.Errorf("effect id = %s, want twinkle", in.Effect.ID)
	}
	if len(in.Effect.Colors) != 2 || in.Effect.Colors[1].Hex() != "0000FF" {
		t.Errorf("colors = %v, want the stated palette", in.Effect.Colors)
	}
	if in.Effect.Brightness == nil || *in.Effect.Brightness != 128 {
		t.Errorf("brightness = %v, want 128 (0.5 scaled)", in.Effect.Brightness)
	}
	if in.Effect.Speed == nil || *in.Effect.Speed != 102 {
		t.Errorf("speed = %v, want 102 (0.4 scaled)", in.Effect.Speed)
	}
	if resp.Reply != "Twinkling red and blue." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestAdapterResolve_ConversationalReplyIsNotAnError(t *testing.T) {
	stub := &stubCompleter{reply: "What kind of mood are you going for tonight?"}
	a := NewAdapter(stub, false)

	resp, err := a.Resolve(context.Background(), Request{Text: "hmm"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resp.Intent.Kind != intent.KindUnknown {
		t.Errorf("kind = %s, want %s", resp.Intent.Kind, intent.KindUnknown)
	}
	if !strings.Contains(resp.Reply, "mood") {
		t.Errorf("reply lost: %q", resp.Reply)
	}
}

func TestAdapterResolve_WrapsProviderFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("dial tcp: timeout")}
	a := NewAdapter(stub, false)

	_, err := a.Resolve(context.Background(), Request{Text: "something nice"})
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error = %v, want *RemoteError", err)
	}
	if remoteErr.RawText != "something nice" {
		t.Errorf("RawText = %q", remoteErr.RawText)
	}
}

func TestNormalize_DefaultsAndInvalids(t *testing.T) {
	// Missing confidence falls back to the remote default.
	got := normalize(payload{Kind: "power"}, "on please")
	if got.Confidence != remoteDefaultConfidence {
		t.Errorf("confidence = %.2f, want %.2f", got.Confidence, remoteDefaultConfidence)
	}
	if got.Power == nil || !got.Power.On {
		t.Errorf("power defaults to on when unset: %+v", got.Power)
	}

	// A color kind without colors degrades to unknown with zero confidence.
	got = normalize(payload{Kind: "solid_color"}, "paint it")
	if got.Kind != intent.KindUnknown || got.Confidence != 0 {
		t.Errorf("got %s/%.2f, want unknown/0", got.Kind, got.Confidence)
	}

	// Unparseable hex strings are skipped, not fatal.
	got = normalize(payload{Kind: "effect", EffectID: "chase", Colors: []string{"nope", "00FF00"}}, "chase")
	if len(got.Effect.Colors) != 1 || got.Effect.Colors[0].Hex() != "00FF00" {
		t.Errorf("colors = %v, want the one valid entry", got.Effect.Colors)
	}
}
