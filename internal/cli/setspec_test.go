package cli

import (
	"testing"

	"github.com/claude/repvault/internal/models"
)

// TestParseSetSpec covers the accepted forms and the common mistakes.
func TestParseSetSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    models.SetEntry
		wantErr bool
	}{
		{
			name: "weighted set",
			spec: "Bench Press:5@135",
			want: models.SetEntry{ExerciseName: "Bench Press", Reps: 5, Weight: 135},
		},
		{
			name: "bodyweight set",
			spec: "Pull-ups:10@0",
			want: models.SetEntry{ExerciseName: "Pull-ups", Reps: 10, Weight: 0},
		},
		{
			name: "superset suffix",
			spec: "Curls:12@25:ss",
			want: models.SetEntry{ExerciseName: "Curls", Reps: 12, Weight: 25, IsSuperset: true},
		},
		{
			name: "fractional weight",
			spec: "Overhead Press:8@62.5",
			want: models.SetEntry{ExerciseName: "Overhead Press", Reps: 8, Weight: 62.5},
		},
		{name: "missing weight", spec: "Squat:5", wantErr: true},
		{name: "missing name", spec: ":5@100", wantErr: true},
		{name: "zero reps", spec: "Squat:0@100", wantErr: true},
		{name: "negative weight", spec: "Squat:5@-10", wantErr: true},
		{name: "not a number", spec: "Squat:five@100", wantErr: true},
		{name: "empty", spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSetSpec(%q) = %+v, want error", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSetSpec(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseSetSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

// TestSetSpecsNumbering verifies set numbers count up per exercise in the
// order flags are given.
func TestSetSpecsNumbering(t *testing.T) {
	var specs SetSpecs
	for _, v := range []string{"Squat:5@100", "Squat:5@105", "bench press:8@60", "squat:3@110"} {
		if err := specs.Set(v); err != nil {
			t.Fatalf("Set(%q): %v", v, err)
		}
	}
	wantNumbers := []int{1, 2, 1, 3}
	for i, want := range wantNumbers {
		if specs[i].SetNumber != want {
			t.Errorf("set %d (%s): number = %d, want %d", i, specs[i].ExerciseName, specs[i].SetNumber, want)
		}
	}
}
