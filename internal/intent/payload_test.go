package intent

import (
	"math"
	"testing"
)

func TestNewDevicePayload_Bounds(t *testing.T) {
	p := NewDevicePayload(true, 400, 28, -10, []RGB{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12},
	})

	if p.Brightness != 255 {
		t.Errorf("brightness = %d, want clamped 255", p.Brightness)
	}
	if p.Speed != 0 {
		t.Errorf("speed = %d, want clamped 0", p.Speed)
	}
	if len(p.Colors) != 3 {
		t.Errorf("colors = %d, want truncated to 3", len(p.Colors))
	}
}

func TestNewDevicePayload_EmptyColorsDefaultWarmWhite(t *testing.T) {
	p := NewDevicePayload(true, 128, 0, 0, nil)
	if len(p.Colors) != 1 || p.Colors[0] != warmWhite {
		t.Errorf("colors = %v, want single warm white", p.Colors)
	}
}

func TestWLEDState_Shape(t *testing.T) {
	p := NewDevicePayload(true, 200, 28, 150, []RGB{{255, 0, 0}})
	st := p.WLEDState()

	if st["on"] != true || st["bri"] != 200 {
		t.Fatalf("top level wrong: %v", st)
	}
	segs, ok := st["seg"].([]map[string]any)
	if !ok || len(segs) != 1 {
		t.Fatalf("seg wrong: %v", st["seg"])
	}
	if segs[0]["fx"] != 28 || segs[0]["sx"] != 150 {
		t.Errorf("segment wrong: %v", segs[0])
	}
	cols := segs[0]["col"].([][]int)
	if len(cols) != 1 || cols[0][0] != 255 {
		t.Errorf("colors wrong: %v", cols)
	}
}

func TestOverallConfidence(t *testing.T) {
	tests := []struct {
		name    string
		sources ParameterSources
		want    float64
	}{
		{
			name: "all user specified",
			sources: ParameterSources{
				Colors: UserSpecified, Effect: UserSpecified, Brightness: UserSpecified,
				Speed: UserSpecified, Zone: UserSpecified,
			},
			want: 1.0,
		},
		{
			name: "all defaults",
			sources: ParameterSources{
				Colors: SystemDefault, Effect: SystemDefault, Brightness: SystemDefault,
				Speed: SystemDefault, Zone: SystemDefault,
			},
			want: 0.3,
		},
		{
			name: "mixed",
			sources: ParameterSources{
				Colors: UserSpecified, Effect: ContextInferred, Brightness: ContextInferred,
				Speed: SystemDefault, Zone: SystemDefault,
			},
			want: (1.0 + 0.6 + 0.6 + 0.3 + 0.3) / 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ResolvedSuggestion{Sources: tt.sources}
			if got := s.OverallConfidence(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OverallConfidence() = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}
