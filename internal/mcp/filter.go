package mcp

import (
	"strings"

	"github.com/claude/repvault/internal/models"
)

// filterWorkouts returns workouts dated within [start, end], optionally
// restricted to those containing a set whose exercise name matches the
// given case-insensitive substring.
func filterWorkouts(workouts []models.Workout, start, end models.Date, exercise string) []models.Workout {
	needle := strings.ToLower(exercise)
	out := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.Date.Before(start) || w.Date.After(end) {
			continue
		}
		if needle != "" && !workoutMentions(w, needle) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func workoutMentions(w models.Workout, needle string) bool {
	for _, s := range w.Exercises {
		if strings.Contains(strings.ToLower(s.ExerciseName), needle) {
			return true
		}
	}
	return false
}
