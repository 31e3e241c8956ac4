package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/storage"
	"github.com/claude/repvault/internal/vault"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestTracker builds a tracker over a real encrypted sqlite store in a
// temp dir, loaded with the default document.
func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	records := storage.NewRecordStore(filepath.Join(t.TempDir(), "vault.db"))
	t.Cleanup(func() { records.Close() })

	session, err := vault.NewSession("test-passphrase")
	if err != nil {
		t.Fatal(err)
	}
	tr := New(storage.NewDocumentStore(records, session), testLogger())
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tr
}

func benchSets() []models.SetEntry {
	return []models.SetEntry{
		{ExerciseName: "Bench Press", SetNumber: 1, Reps: 5, Weight: 100},
		{ExerciseName: "Bench Press", SetNumber: 2, Reps: 5, Weight: 100},
	}
}

func testDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// TestAddWorkoutRoundTrip verifies an added workout can be looked up by its
// returned id with every field matching the input exactly.
func TestAddWorkoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	date := testDate(t, "2024-03-04")
	sets := benchSets()
	id, err := tr.AddWorkout(ctx, date, "Push Day", "felt strong", sets)
	if err != nil {
		t.Fatalf("AddWorkout: %v", err)
	}
	if id == 0 {
		t.Fatal("AddWorkout returned zero id")
	}

	var got *models.Workout
	for _, w := range tr.Workouts() {
		if w.ID == id {
			w := w
			got = &w
		}
	}
	if got == nil {
		t.Fatalf("workout %d not found after add", id)
	}
	if got.Date != date || got.Name != "Push Day" || got.Notes != "felt strong" {
		t.Errorf("workout = %+v, want input fields back", got)
	}
	if !reflect.DeepEqual(got.Exercises, sets) {
		t.Errorf("sets = %+v, want %+v", got.Exercises, sets)
	}
}

// TestAddWorkoutValidation verifies malformed input yields a
// ValidationError and leaves the collection untouched.
func TestAddWorkoutValidation(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)
	date := testDate(t, "2024-03-04")

	cases := []struct {
		name string
		sets []models.SetEntry
	}{
		{"empty sets", nil},
		{"missing exercise name", []models.SetEntry{{SetNumber: 1, Reps: 5}}},
		{"zero set number", []models.SetEntry{{ExerciseName: "Squat", Reps: 5}}},
		{"zero reps", []models.SetEntry{{ExerciseName: "Squat", SetNumber: 1}}},
		{"negative weight", []models.SetEntry{{ExerciseName: "Squat", SetNumber: 1, Reps: 5, Weight: -10}}},
	}
	for _, tc := range cases {
		_, err := tr.AddWorkout(ctx, date, "W", "", tc.sets)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: err = %v, want ValidationError", tc.name, err)
		}
	}

	if n := len(tr.Workouts()); n != 0 {
		t.Errorf("workouts = %d after failed adds, want 0", n)
	}
}

// TestAddWorkoutUniqueIDs verifies back-to-back adds in the same
// millisecond still get distinct ids.
func TestAddWorkoutUniqueIDs(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)
	date := testDate(t, "2024-03-04")

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		id, err := tr.AddWorkout(ctx, date, "W", "", benchSets())
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
}

// TestAutoAddExercises verifies unknown exercise names are inserted with
// the Other/General placeholder category when auto-add is on, and left out
// of the library when it is off.
func TestAutoAddExercises(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)
	date := testDate(t, "2024-03-04")

	sets := []models.SetEntry{{ExerciseName: "Zercher Squat", SetNumber: 1, Reps: 5, Weight: 60}}
	if _, err := tr.AddWorkout(ctx, date, "W", "", sets); err != nil {
		t.Fatal(err)
	}

	var added *models.ExerciseDef
	for _, e := range tr.Exercises() {
		if e.Name == "Zercher Squat" {
			e := e
			added = &e
		}
	}
	if added == nil {
		t.Fatal("auto-add on: exercise not inserted")
	}
	if added.Category != models.AutoAddCategory || added.Subcategory != models.AutoAddSubcategory {
		t.Errorf("auto-added as %s/%s, want %s/%s",
			added.Category, added.Subcategory, models.AutoAddCategory, models.AutoAddSubcategory)
	}

	off := false
	if err := tr.UpdateSettings(ctx, SettingsPatch{AutoAddExercises: &off}); err != nil {
		t.Fatal(err)
	}
	sets = []models.SetEntry{{ExerciseName: "Jefferson Deadlift", SetNumber: 1, Reps: 5, Weight: 80}}
	if _, err := tr.AddWorkout(ctx, date, "W", "", sets); err != nil {
		t.Fatal(err)
	}
	for _, e := range tr.Exercises() {
		if e.Name == "Jefferson Deadlift" {
			t.Error("auto-add off: exercise was inserted anyway")
		}
	}
}

// TestUpdateWorkout verifies in-place replacement preserving identity, and
// ErrNotFound for unknown ids.
func TestUpdateWorkout(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	id, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "Old", "old notes", benchSets())
	if err != nil {
		t.Fatal(err)
	}

	newDate := testDate(t, "2024-03-05")
	newSets := []models.SetEntry{{ExerciseName: "Squat", SetNumber: 1, Reps: 3, Weight: 140}}
	if err := tr.UpdateWorkout(ctx, id, newDate, "New", "new notes", newSets); err != nil {
		t.Fatalf("UpdateWorkout: %v", err)
	}

	workouts := tr.Workouts()
	if len(workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(workouts))
	}
	w := workouts[0]
	if w.ID != id {
		t.Errorf("id changed: %d, want %d", w.ID, id)
	}
	if w.Name != "New" || w.Date != newDate || !reflect.DeepEqual(w.Exercises, newSets) {
		t.Errorf("workout = %+v, want updated fields", w)
	}

	err = tr.UpdateWorkout(ctx, 99999, newDate, "X", "", newSets)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateWorkout(unknown): err = %v, want ErrNotFound", err)
	}
}

// TestDeleteWorkoutIdempotent verifies removal and that deleting a missing
// id is not an error.
func TestDeleteWorkoutIdempotent(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	id, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "W", "", benchSets())
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.DeleteWorkout(ctx, id); err != nil {
		t.Fatalf("DeleteWorkout: %v", err)
	}
	if err := tr.DeleteWorkout(ctx, id); err != nil {
		t.Fatalf("DeleteWorkout(again): %v", err)
	}
	if n := len(tr.Workouts()); n != 0 {
		t.Errorf("workouts = %d, want 0", n)
	}
}

// TestSubscribeNotifiedOnMutation verifies subscribers fire after
// successful mutations and not after rejected ones.
func TestSubscribeNotifiedOnMutation(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	notified := 0
	tr.Subscribe(func() { notified++ })

	if _, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "W", "", benchSets()); err != nil {
		t.Fatal(err)
	}
	if notified != 1 {
		t.Errorf("notified = %d after add, want 1", notified)
	}

	if _, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "W", "", nil); err == nil {
		t.Fatal("expected validation error")
	}
	if notified != 1 {
		t.Errorf("notified = %d after rejected add, want still 1", notified)
	}
}

// TestFailedSaveKeepsMutation verifies a save failure reports an error but
// leaves the in-memory mutation in place: the state is transiently ahead of
// the store, corrected by the next successful save.
func TestFailedSaveKeepsMutation(t *testing.T) {
	ctx := context.Background()

	// A store path under a regular file cannot be created, so every save fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	records := storage.NewRecordStore(filepath.Join(blocker, "sub", "vault.db"))
	session, _ := vault.NewSession("p")
	tr := New(storage.NewDocumentStore(records, session), testLogger())

	_, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "W", "", benchSets())
	var serr *storage.StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want StoreError", err)
	}
	if n := len(tr.Workouts()); n != 1 {
		t.Errorf("workouts = %d after failed save, want 1 (mutation retained)", n)
	}
}

// TestLoadPersistedState verifies mutations survive a fresh tracker over
// the same store file and passphrase.
func TestLoadPersistedState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.db")
	session, _ := vault.NewSession("p")

	records1 := storage.NewRecordStore(path)
	tr1 := New(storage.NewDocumentStore(records1, session), testLogger())
	if err := tr1.Load(ctx); err != nil {
		t.Fatal(err)
	}
	id, err := tr1.AddWorkout(ctx, testDate(t, "2024-03-04"), "Persisted", "", benchSets())
	if err != nil {
		t.Fatal(err)
	}
	records1.Close()

	records2 := storage.NewRecordStore(path)
	defer records2.Close()
	tr2 := New(storage.NewDocumentStore(records2, session), testLogger())
	if err := tr2.Load(ctx); err != nil {
		t.Fatal(err)
	}
	workouts := tr2.Workouts()
	if len(workouts) != 1 || workouts[0].ID != id || workouts[0].Name != "Persisted" {
		t.Errorf("reloaded workouts = %+v, want the persisted one", workouts)
	}

	wrong, _ := vault.NewSession("wrong")
	tr3 := New(storage.NewDocumentStore(records2, wrong), testLogger())
	if err := tr3.Load(ctx); !errors.Is(err, vault.ErrDecrypt) {
		t.Errorf("Load with wrong passphrase: err = %v, want vault.ErrDecrypt", err)
	}
}

// TestStreakAndStatsFromTracker verifies the derived engines run over the
// tracker's live collections.
func TestStreakAndStatsFromTracker(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	monday := true
	if err := tr.UpdateSettings(ctx, SettingsPatch{WeekStartMonday: &monday}); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"2024-01-01", "2024-01-08"} {
		if _, err := tr.AddWorkout(ctx, testDate(t, d), "W", "", benchSets()); err != nil {
			t.Fatal(err)
		}
	}

	streak := tr.Streak(testDate(t, "2024-01-08"))
	if streak.Current != 2 || streak.Best != 2 {
		t.Errorf("Streak = %+v, want {2 2}", streak)
	}

	totals := tr.Stats(testDate(t, "2024-01-08"))
	if totals.Workouts != 2 || totals.ThisMonth != 2 {
		t.Errorf("Stats = %+v, want {2 2}", totals)
	}

	prs := tr.PersonalRecords()
	if len(prs) != 1 || prs[0].Exercise != "Bench Press" || prs[0].Weight != 100 {
		t.Errorf("PersonalRecords = %+v, want one Bench Press at 100", prs)
	}
}

// TestSnapshotIsolation verifies readers cannot mutate tracker state
// through a snapshot.
func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	if _, err := tr.AddWorkout(ctx, testDate(t, "2024-03-04"), "W", "", benchSets()); err != nil {
		t.Fatal(err)
	}

	snap := tr.Workouts()
	snap[0].Exercises[0].ExerciseName = "tampered"

	if tr.Workouts()[0].Exercises[0].ExerciseName != "Bench Press" {
		t.Error("snapshot aliases tracker state")
	}
}
