package intent

// DevicePayload is the device-ready representation of a command: bounded
// integers and at most three colors, matching what the ESP32 bridge
// forwards to the controller.
type DevicePayload struct {
	On         bool  `json:"on"`
	Brightness int   `json:"brightness"` // 0-255
	Colors     []RGB `json:"colors"`     // up to 3
	EffectID   int   `json:"effectId"`
	Speed      int   `json:"speed"` // 0-255
}

// warmWhite is the safe color used whenever a payload would otherwise
// carry no colors at all.
var warmWhite = RGB{255, 180, 107}

// NewDevicePayload builds a bounded payload. Brightness and speed are
// clamped to 0-255, colors truncated to three and defaulted to a single
// warm white when empty.
func NewDevicePayload(on bool, brightness255, effectID, speed255 int, colors []RGB) *DevicePayload {
	if len(colors) > 3 {
		colors = colors[:3]
	}
	if len(colors) == 0 {
		colors = []RGB{warmWhite}
	}
	out := make([]RGB, len(colors))
	copy(out, colors)
	return &DevicePayload{
		On:         on,
		Brightness: clampInt(brightness255, 0, 255),
		Colors:     out,
		EffectID:   effectID,
		Speed:      clampInt(speed255, 0, 255),
	}
}

// WLEDState renders the payload as the WLED JSON state object the bridge
// forwards verbatim to the controller.
func (p *DevicePayload) WLEDState() map[string]any {
	cols := make([][]int, 0, len(p.Colors))
	for _, c := range p.Colors {
		cols = append(cols, []int{int(c[0]), int(c[1]), int(c[2])})
	}
	return map[string]any{
		"on":  p.On,
		"bri": p.Brightness,
		"seg": []map[string]any{
			{
				"col": cols,
				"fx":  p.EffectID,
				"sx":  p.Speed,
			},
		},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
