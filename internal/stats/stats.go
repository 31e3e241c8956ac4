package stats

import (
	"sort"

	"github.com/claude/repvault/internal/models"
)

// Totals holds aggregate workout counts.
type Totals struct {
	Workouts  int `json:"workouts"`
	ThisMonth int `json:"thisMonth"`
}

// Aggregate counts all workouts and those dated within the current calendar
// month, from the 1st inclusive up to now.
func Aggregate(workouts []models.Workout, now models.Date) Totals {
	t := Totals{Workouts: len(workouts)}
	for _, w := range workouts {
		if w.Date.Year == now.Year && w.Date.Month == now.Month && !w.Date.After(now) {
			t.ThisMonth++
		}
	}
	return t
}

// PR is the heaviest recorded set for one exercise.
type PR struct {
	Exercise string      `json:"exercise"`
	Weight   float64     `json:"weight"`
	Reps     int         `json:"reps"`
	Date     models.Date `json:"date"`
}

// PersonalRecords finds, for every exercise appearing with weight > 0, the
// single heaviest set together with its workout date. Ties keep the first
// set encountered in workout/set iteration order. Bodyweight sets
// (weight 0) never produce a record. Output is sorted by exercise name,
// case-sensitively.
func PersonalRecords(workouts []models.Workout) []PR {
	best := make(map[string]PR)
	for _, w := range workouts {
		for _, set := range w.Exercises {
			if set.Weight <= 0 {
				continue
			}
			prev, seen := best[set.ExerciseName]
			if !seen || set.Weight > prev.Weight {
				best[set.ExerciseName] = PR{
					Exercise: set.ExerciseName,
					Weight:   set.Weight,
					Reps:     set.Reps,
					Date:     w.Date,
				}
			}
		}
	}

	out := make([]PR, 0, len(best))
	for _, pr := range best {
		out = append(out, pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exercise < out[j].Exercise })
	return out
}

// ExerciseVolume is the total lifted volume (reps x weight) for one exercise.
type ExerciseVolume struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Volume   float64 `json:"volume"`
}

// VolumeByExercise sums reps x weight per exercise across all workouts,
// sorted by volume descending, name ascending on ties.
func VolumeByExercise(workouts []models.Workout) []ExerciseVolume {
	totals := make(map[string]*ExerciseVolume)
	for _, w := range workouts {
		for _, set := range w.Exercises {
			v, ok := totals[set.ExerciseName]
			if !ok {
				v = &ExerciseVolume{Exercise: set.ExerciseName}
				totals[set.ExerciseName] = v
			}
			v.Sets++
			v.Volume += float64(set.Reps) * set.Weight
		}
	}

	out := make([]ExerciseVolume, 0, len(totals))
	for _, v := range totals {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Exercise < out[j].Exercise
	})
	return out
}
