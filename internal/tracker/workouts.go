package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/repvault/internal/models"
)

// AddWorkout validates and appends a new workout, returning its assigned id.
// Unknown exercise names are auto-added to the library (category "Other")
// when the auto-add setting is enabled; otherwise they are kept as plain
// text references.
func (t *Tracker) AddWorkout(ctx context.Context, date models.Date, name, notes string, sets []models.SetEntry) (int64, error) {
	if err := validateSets(sets); err != nil {
		return 0, err
	}
	if date.IsZero() {
		return 0, invalidf("date", "date is required")
	}

	var id int64
	err := t.mutate(ctx, func(doc *models.Document) error {
		id = nextID(workoutIDs(doc))
		if doc.Settings.AutoAddExercises {
			autoAddExercises(doc, sets)
		}
		w := models.Workout{
			ID:        id,
			Date:      date,
			Name:      name,
			Notes:     notes,
			Exercises: make([]models.SetEntry, len(sets)),
		}
		copy(w.Exercises, sets)
		doc.Workouts = append(doc.Workouts, w)
		t.log.Info("workout added", "id", id, "date", date.String(), "sets", len(sets))
		return nil
	})
	return id, err
}

// UpdateWorkout replaces the fields of an existing workout in place,
// preserving its identity.
func (t *Tracker) UpdateWorkout(ctx context.Context, id int64, date models.Date, name, notes string, sets []models.SetEntry) error {
	if err := validateSets(sets); err != nil {
		return err
	}
	if date.IsZero() {
		return invalidf("date", "date is required")
	}

	return t.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Workouts {
			if doc.Workouts[i].ID != id {
				continue
			}
			if doc.Settings.AutoAddExercises {
				autoAddExercises(doc, sets)
			}
			w := &doc.Workouts[i]
			w.Date = date
			w.Name = name
			w.Notes = notes
			w.Exercises = make([]models.SetEntry, len(sets))
			copy(w.Exercises, sets)
			t.log.Info("workout updated", "id", id)
			return nil
		}
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	})
}

// DeleteWorkout removes a workout. Deleting an unknown id is a no-op; the
// UI confirms before calling.
func (t *Tracker) DeleteWorkout(ctx context.Context, id int64) error {
	return t.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Workouts {
			if doc.Workouts[i].ID == id {
				doc.Workouts = append(doc.Workouts[:i], doc.Workouts[i+1:]...)
				t.log.Info("workout deleted", "id", id)
				return nil
			}
		}
		return nil
	})
}

func validateSets(sets []models.SetEntry) error {
	if len(sets) == 0 {
		return invalidf("sets", "at least one set is required")
	}
	for i, s := range sets {
		if strings.TrimSpace(s.ExerciseName) == "" {
			return invalidf("sets", "set %d is missing an exercise name", i+1)
		}
		if s.SetNumber <= 0 {
			return invalidf("sets", "set %d has a non-positive set number", i+1)
		}
		if s.Reps <= 0 {
			return invalidf("sets", "set %d has a non-positive rep count", i+1)
		}
		if s.Weight < 0 {
			return invalidf("sets", "set %d has a negative weight", i+1)
		}
	}
	return nil
}

// autoAddExercises inserts any exercise name not yet in the library.
func autoAddExercises(doc *models.Document, sets []models.SetEntry) {
	for _, s := range sets {
		if findExercise(doc, s.ExerciseName) >= 0 {
			continue
		}
		doc.Exercises = append(doc.Exercises, models.ExerciseDef{
			Name:        s.ExerciseName,
			Category:    models.AutoAddCategory,
			Subcategory: models.AutoAddSubcategory,
		})
	}
}

func workoutIDs(doc *models.Document) map[int64]bool {
	ids := make(map[int64]bool, len(doc.Workouts))
	for _, w := range doc.Workouts {
		ids[w.ID] = true
	}
	return ids
}

func measurementIDs(doc *models.Document) map[int64]bool {
	ids := make(map[int64]bool, len(doc.Measurements))
	for _, m := range doc.Measurements {
		ids[m.ID] = true
	}
	return ids
}

// nextID assigns the creation timestamp in Unix milliseconds, bumped past
// any existing id so two entries created within the same millisecond still
// get distinct, never-reused ids.
func nextID(existing map[int64]bool) int64 {
	id := time.Now().UnixMilli()
	for existing[id] {
		id++
	}
	return id
}
