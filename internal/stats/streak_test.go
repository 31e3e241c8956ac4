package stats

import (
	"testing"
	"time"

	"github.com/claude/repvault/internal/models"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func workoutsOn(t *testing.T, dates ...string) []models.Workout {
	t.Helper()
	out := make([]models.Workout, len(dates))
	for i, s := range dates {
		out[i] = models.Workout{ID: int64(i + 1), Date: day(t, s), Name: "Session"}
	}
	return out
}

// TestWeekStart verifies truncation to Sunday and Monday week starts.
func TestWeekStart(t *testing.T) {
	cases := []struct {
		date   string
		monday bool
		want   string
	}{
		{"2024-01-10", false, "2024-01-07"}, // Wednesday → Sunday
		{"2024-01-10", true, "2024-01-08"},  // Wednesday → Monday
		{"2024-01-07", false, "2024-01-07"}, // Sunday is its own Sunday-week start
		{"2024-01-07", true, "2024-01-01"},  // Sunday belongs to the prior Monday week
		{"2024-01-08", true, "2024-01-08"},  // Monday is its own Monday-week start
		{"2024-01-08", false, "2024-01-07"},
	}
	for _, tc := range cases {
		got := WeekStart(day(t, tc.date), tc.monday)
		if got.String() != tc.want {
			t.Errorf("WeekStart(%s, monday=%v) = %s, want %s", tc.date, tc.monday, got, tc.want)
		}
	}
}

// TestStreakConsecutiveWeeks verifies two Monday workouts a week apart give
// current=2, best=2 when "now" falls in the second week.
func TestStreakConsecutiveWeeks(t *testing.T) {
	workouts := workoutsOn(t, "2024-01-01", "2024-01-08")
	got := Streak(workouts, true, day(t, "2024-01-08"))
	if got.Current != 2 || got.Best != 2 {
		t.Errorf("Streak = %+v, want {Current:2 Best:2}", got)
	}
}

// TestStreakLapsed verifies the current streak drops to zero once now's
// week has no workout, while best remembers the old run.
func TestStreakLapsed(t *testing.T) {
	workouts := workoutsOn(t, "2024-01-01", "2024-01-08")
	got := Streak(workouts, true, day(t, "2024-01-22"))
	if got.Current != 0 {
		t.Errorf("Current = %d, want 0", got.Current)
	}
	if got.Best != 2 {
		t.Errorf("Best = %d, want 2", got.Best)
	}
}

// TestStreakEmpty verifies no workouts means no streaks.
func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, false, day(t, "2024-01-08")); got != (StreakResult{}) {
		t.Errorf("Streak(empty) = %+v, want zero", got)
	}
}

// TestStreakMultipleWorkoutsOneWeek verifies several workouts in the same
// week collapse into a single week bucket.
func TestStreakMultipleWorkoutsOneWeek(t *testing.T) {
	workouts := workoutsOn(t, "2024-01-08", "2024-01-10", "2024-01-12")
	got := Streak(workouts, true, day(t, "2024-01-12"))
	if got.Current != 1 || got.Best != 1 {
		t.Errorf("Streak = %+v, want {Current:1 Best:1}", got)
	}
}

// TestStreakGapBreaksRun verifies a missing week ends a run and best tracks
// the longest run, not the latest.
func TestStreakGapBreaksRun(t *testing.T) {
	// Three consecutive weeks, a gap, then one week containing "now".
	workouts := workoutsOn(t, "2024-01-01", "2024-01-08", "2024-01-15", "2024-02-05")
	got := Streak(workouts, true, day(t, "2024-02-05"))
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1", got.Current)
	}
	if got.Best != 3 {
		t.Errorf("Best = %d, want 3", got.Best)
	}
}

// TestStreakSundayWeekStart verifies bucketing respects the Sunday week
// start: Sunday and the following Monday land in different Monday-weeks but
// the same Sunday-week.
func TestStreakSundayWeekStart(t *testing.T) {
	workouts := workoutsOn(t, "2024-01-07", "2024-01-08") // Sunday, Monday
	now := day(t, "2024-01-08")

	sunday := Streak(workouts, false, now)
	if sunday.Current != 1 {
		t.Errorf("Sunday weeks: Current = %d, want 1 (same bucket)", sunday.Current)
	}

	monday := Streak(workouts, true, now)
	if monday.Current != 2 {
		t.Errorf("Monday weeks: Current = %d, want 2 (consecutive buckets)", monday.Current)
	}
}

// TestStreakIgnoresTimeOfDay verifies bucketing operates on whole days:
// a workout logged from a late-evening timestamp counts for its calendar day.
func TestStreakIgnoresTimeOfDay(t *testing.T) {
	late := models.DateOf(time.Date(2024, time.January, 8, 23, 59, 59, 0, time.Local))
	workouts := []models.Workout{{ID: 1, Date: late}}
	got := Streak(workouts, true, day(t, "2024-01-08"))
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1", got.Current)
	}
}

// TestDisplayStreak verifies the manual override replaces the displayed
// current streak and raises the displayed best without touching the
// computed values.
func TestDisplayStreak(t *testing.T) {
	computed := StreakResult{Current: 2, Best: 5}

	cases := []struct {
		manual int
		want   StreakResult
	}{
		{0, StreakResult{Current: 2, Best: 5}},
		{-1, StreakResult{Current: 2, Best: 5}},
		{3, StreakResult{Current: 3, Best: 5}},
		{9, StreakResult{Current: 9, Best: 9}},
	}
	for _, tc := range cases {
		if got := DisplayStreak(computed, tc.manual); got != tc.want {
			t.Errorf("DisplayStreak(%+v, %d) = %+v, want %+v", computed, tc.manual, got, tc.want)
		}
	}

	if computed != (StreakResult{Current: 2, Best: 5}) {
		t.Error("DisplayStreak mutated its input")
	}
}
