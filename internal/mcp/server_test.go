package mcp

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
)

// fakeSource serves a fixed document without a store behind it.
type fakeSource struct {
	doc *models.Document
}

func (f *fakeSource) Snapshot() *models.Document { return f.doc.Clone() }
func (f *fakeSource) Streak(now models.Date) stats.StreakResult {
	return stats.Streak(f.doc.Workouts, f.doc.Settings.WeekStartMonday, now)
}
func (f *fakeSource) Stats(now models.Date) stats.Totals {
	return stats.Aggregate(f.doc.Workouts, now)
}
func (f *fakeSource) PersonalRecords() []stats.PR {
	return stats.PersonalRecords(f.doc.Workouts)
}
func (f *fakeSource) ActiveExercises() []models.ExerciseDef {
	out := []models.ExerciseDef{}
	for _, e := range f.doc.Exercises {
		if !e.Disabled {
			out = append(out, e)
		}
	}
	return out
}

// TestDefaultDateRange verifies date range defaults (last 30 days) and parsing.
func TestDefaultDateRange(t *testing.T) {
	start, end, err := defaultDateRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := end.EpochDays() - start.EpochDays(); diff != 30 {
		t.Errorf("default range = %d days, want 30", diff)
	}

	start, end, err = defaultDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.String() != "2024-01-01" || end.String() != "2024-01-31" {
		t.Errorf("range = %s..%s, want 2024-01-01..2024-01-31", start, end)
	}

	if _, _, err := defaultDateRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestFilterWorkouts verifies date-range bounds are inclusive and the
// exercise filter matches case-insensitive substrings.
func TestFilterWorkouts(t *testing.T) {
	mk := func(id int64, date string, exercise string) models.Workout {
		d, err := models.ParseDate(date)
		if err != nil {
			t.Fatal(err)
		}
		return models.Workout{ID: id, Date: d, Exercises: []models.SetEntry{
			{ExerciseName: exercise, SetNumber: 1, Reps: 5, Weight: 100},
		}}
	}
	workouts := []models.Workout{
		mk(1, "2024-01-01", "Bench Press"),
		mk(2, "2024-01-15", "Squat"),
		mk(3, "2024-01-31", "Bench Press"),
		mk(4, "2024-02-01", "Bench Press"),
	}
	start, _ := models.ParseDate("2024-01-01")
	end, _ := models.ParseDate("2024-01-31")

	got := filterWorkouts(workouts, start, end, "")
	if len(got) != 3 {
		t.Errorf("range filter: %d workouts, want 3 (bounds inclusive)", len(got))
	}

	got = filterWorkouts(workouts, start, end, "bench")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("exercise filter: %+v, want workouts 1 and 3", got)
	}
}

// TestNewRegistersCapabilities verifies the server builds with all tools
// and resources against a plain data source.
func TestNewRegistersCapabilities(t *testing.T) {
	doc := models.DefaultDocument()
	doc.Workouts = append(doc.Workouts, models.Workout{
		ID:   1,
		Date: models.Date{Year: 2024, Month: time.January, Day: 8},
		Exercises: []models.SetEntry{
			{ExerciseName: "Squat", SetNumber: 1, Reps: 5, Weight: 120},
		},
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(&fakeSource{doc: doc}, "test", log)
	if s == nil {
		t.Fatal("New returned nil server")
	}
}
