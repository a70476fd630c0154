package signals

import (
	"reflect"
	"testing"
)

func TestClassify_Basics(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  Context
		want Classification
	}{
		{
			name: "clear edit wording",
			text: "make it slower",
			want: ClassEdit,
		},
		{
			name: "clear new scene wording",
			text: "surprise me with something new",
			want: ClassNewScene,
		},
		{
			name: "mood word alone stays ambiguous",
			text: "cozy",
			want: ClassAmbiguous,
		},
		{
			name: "close scores stay ambiguous",
			text: "adjust the scene a bit",
			want: ClassAmbiguous,
		},
		{
			name: "empty text",
			text: "",
			want: ClassAmbiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.ctx)
			if got.Classification != tt.want {
				t.Errorf("Classify(%q) = %s (edit=%.2f new=%.2f), want %s",
					tt.text, got.Classification, got.EditScore, got.NewScore, tt.want)
			}
		})
	}
}

func TestDecide_SmallGapIsAlwaysAmbiguous(t *testing.T) {
	if got := decide(0.40, 0.38); got != ClassAmbiguous {
		t.Errorf("decide(0.40, 0.38) = %s, want %s", got, ClassAmbiguous)
	}
	if got := decide(0.38, 0.40); got != ClassAmbiguous {
		t.Errorf("decide(0.38, 0.40) = %s, want %s", got, ClassAmbiguous)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	ctx := Context{
		SceneActive:        true,
		ActiveEffectMoving: true,
		ActiveColorCount:   2,
		SavedNames:         []string{"Game Night", "Sunset Beach"},
		FavoriteNames:      []string{"Sunset"},
	}
	a := Classify("make it a bit warmer", ctx)
	b := Classify("make it a bit warmer", ctx)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", a, b)
	}
}

func TestClassify_PresetNameBonus(t *testing.T) {
	ctx := Context{SavedNames: []string{"Game Night"}}
	got := Classify("play game night", ctx)
	if got.MatchedPresetName != "Game Night" {
		t.Fatalf("MatchedPresetName = %q, want %q", got.MatchedPresetName, "Game Night")
	}
	if got.Classification != ClassNewScene {
		t.Errorf("classification = %s, want %s", got.Classification, ClassNewScene)
	}
}

func TestClassify_FavoritesWinOverSaved(t *testing.T) {
	ctx := Context{
		SavedNames:    []string{"Sunset Beach"},
		FavoriteNames: []string{"Sunset"},
	}
	got := Classify("sunset", ctx)
	if got.MatchedPresetName != "Sunset" {
		t.Errorf("MatchedPresetName = %q, want favorite %q", got.MatchedPresetName, "Sunset")
	}
}

func TestClassify_ShortPresetNameNeedsWordBoundary(t *testing.T) {
	ctx := Context{SavedNames: []string{"KC"}}

	if got := Classify("kick it up a notch", ctx); got.MatchedPresetName != "" {
		t.Errorf("short name matched inside a word: %q", got.MatchedPresetName)
	}
	if got := Classify("kc colors please", ctx); got.MatchedPresetName != "KC" {
		t.Errorf("MatchedPresetName = %q, want %q", got.MatchedPresetName, "KC")
	}
}

func TestClassify_ActiveSceneTipsWeakEdits(t *testing.T) {
	text := "turn it up"

	idle := Classify(text, Context{})
	if idle.Classification != ClassAmbiguous {
		t.Fatalf("without an active scene, classification = %s, want %s",
			idle.Classification, ClassAmbiguous)
	}

	active := Classify(text, Context{SceneActive: true, ActiveEffectMoving: true})
	if active.Classification != ClassEdit {
		t.Errorf("with an active moving scene, classification = %s, want %s",
			active.Classification, ClassEdit)
	}
}

func TestClassify_BareHueSplitsBonus(t *testing.T) {
	ctx := Context{ActiveColorCount: 2}
	got := Classify("make the lights blue", ctx)

	// "make the lights blue" strips to the bare hue "blue"; the split
	// bonus lands evenly on both sides and never decides on its own.
	if got.EditScore != got.NewScore {
		t.Errorf("split bonus uneven: edit=%.2f new=%.2f", got.EditScore, got.NewScore)
	}
	if got.Classification != ClassAmbiguous {
		t.Errorf("classification = %s, want %s", got.Classification, ClassAmbiguous)
	}
}
