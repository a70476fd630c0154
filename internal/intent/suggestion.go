package intent

// Provenance says why a resolved parameter has its value.
type Provenance string

const (
	// UserSpecified values came straight from the user's words.
	UserSpecified Provenance = "user_specified"
	// ContextInferred values were derived from themes, moods, time of day
	// or learned habits.
	ContextInferred Provenance = "context_inferred"
	// SystemDefault values are the hard-coded safe fallbacks.
	SystemDefault Provenance = "system_default"
)

// Weight converts provenance into its fixed confidence contribution.
func (p Provenance) Weight() float64 {
	switch p {
	case UserSpecified:
		return 1.0
	case ContextInferred:
		return 0.6
	default:
		return 0.3
	}
}

// MotionCategory groups effects by how they move.
type MotionCategory string

const (
	MotionStatic MotionCategory = "static"
	MotionFlow   MotionCategory = "flow"
	MotionPulse  MotionCategory = "pulse"
	MotionFlash  MotionCategory = "flash"
)

// ParameterSources records the provenance of each of the five resolved
// parameters.
type ParameterSources struct {
	Colors     Provenance
	Effect     Provenance
	Brightness Provenance
	Speed      Provenance
	Zone       Provenance
}

// ResolvedSuggestion is the fully-specified output of the defaults engine:
// every parameter has a concrete value and a provenance tag. It is built
// exactly once per routed command and replaced wholesale on the next one.
type ResolvedSuggestion struct {
	Colors     []RGB
	EffectID   string
	Motion     MotionCategory
	Brightness float64  // 0..1
	Speed      *float64 // 0..1, nil only before resolution
	Zone       string
	Sources    ParameterSources
	Payload    *DevicePayload
}

// OverallConfidence folds the five provenance tags into a single scalar
// using the fixed 1.0/0.6/0.3 weights.
func (s ResolvedSuggestion) OverallConfidence() float64 {
	sum := s.Sources.Colors.Weight() +
		s.Sources.Effect.Weight() +
		s.Sources.Brightness.Weight() +
		s.Sources.Speed.Weight() +
		s.Sources.Zone.Weight()
	return sum / 5.0
}
