package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/repvault/internal/models"
)

// AddExercise inserts a new library entry. Names collide case-insensitively.
func (t *Tracker) AddExercise(ctx context.Context, name, category, subcategory, videoLink string) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("name", "exercise name is required")
	}

	return t.mutate(ctx, func(doc *models.Document) error {
		if findExercise(doc, name) >= 0 {
			return fmt.Errorf("exercise %q: %w", name, ErrDuplicate)
		}
		doc.Exercises = append(doc.Exercises, models.ExerciseDef{
			Name:        name,
			Category:    category,
			Subcategory: subcategory,
			VideoLink:   videoLink,
		})
		t.log.Info("exercise added", "name", name, "category", category)
		return nil
	})
}

// RenameExercise updates a library entry and rewrites every historical set
// referencing the old name. The library entry and all references change in
// the same persisted document, or none do: on a duplicate collision nothing
// is touched.
func (t *Tracker) RenameExercise(ctx context.Context, oldName, newName, category, subcategory, videoLink string) error {
	if strings.TrimSpace(newName) == "" {
		return invalidf("newName", "exercise name is required")
	}

	return t.mutate(ctx, func(doc *models.Document) error {
		idx := findExercise(doc, oldName)
		if idx < 0 {
			return fmt.Errorf("exercise %q: %w", oldName, ErrNotFound)
		}
		if other := findExercise(doc, newName); other >= 0 && other != idx {
			return fmt.Errorf("exercise %q: %w", newName, ErrDuplicate)
		}

		doc.Exercises[idx].Name = newName
		doc.Exercises[idx].Category = category
		doc.Exercises[idx].Subcategory = subcategory
		doc.Exercises[idx].VideoLink = videoLink

		renamed := 0
		for wi := range doc.Workouts {
			for si := range doc.Workouts[wi].Exercises {
				if strings.EqualFold(doc.Workouts[wi].Exercises[si].ExerciseName, oldName) {
					doc.Workouts[wi].Exercises[si].ExerciseName = newName
					renamed++
				}
			}
		}
		t.log.Info("exercise renamed", "from", oldName, "to", newName, "sets_rewritten", renamed)
		return nil
	})
}

// ToggleExerciseDisabled flips whether an exercise is offered in
// new-entry pickers. Historical references are unaffected.
func (t *Tracker) ToggleExerciseDisabled(ctx context.Context, name string) error {
	return t.mutate(ctx, func(doc *models.Document) error {
		idx := findExercise(doc, name)
		if idx < 0 {
			return fmt.Errorf("exercise %q: %w", name, ErrNotFound)
		}
		doc.Exercises[idx].Disabled = !doc.Exercises[idx].Disabled
		t.log.Info("exercise toggled", "name", name, "disabled", doc.Exercises[idx].Disabled)
		return nil
	})
}

// DeleteExercise removes a library entry without cascading: historical
// workouts keep the now-orphaned name as plain text. Deleting an unknown
// name is a no-op.
func (t *Tracker) DeleteExercise(ctx context.Context, name string) error {
	return t.mutate(ctx, func(doc *models.Document) error {
		idx := findExercise(doc, name)
		if idx < 0 {
			return nil
		}
		doc.Exercises = append(doc.Exercises[:idx], doc.Exercises[idx+1:]...)
		t.log.Info("exercise deleted", "name", name)
		return nil
	})
}

// findExercise locates a library entry by case-insensitive name, or -1.
func findExercise(doc *models.Document, name string) int {
	for i := range doc.Exercises {
		if strings.EqualFold(doc.Exercises[i].Name, name) {
			return i
		}
	}
	return -1
}
