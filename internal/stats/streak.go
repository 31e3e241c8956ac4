// Package stats derives streaks, aggregate totals, and personal records
// from the workout collection. Everything here is a pure function of its
// inputs; nothing is persisted.
package stats

import (
	"sort"

	"github.com/claude/repvault/internal/models"
)

const daysPerWeek = 7

// StreakResult holds the consecutive-week workout streak ending at "now"
// and the best streak ever recorded.
type StreakResult struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// WeekStart truncates a date to the start of its containing week. The week
// begins on Monday when monday is true, Sunday otherwise.
func WeekStart(d models.Date, monday bool) models.Date {
	weekday := int(d.Weekday()) // Sunday = 0
	if monday {
		weekday = (weekday + 6) % daysPerWeek // Monday = 0
	}
	return d.AddDays(-weekday)
}

// weekKey buckets a date by the epoch-day number of its week start.
// Whole-day granularity: any time-of-day component was already dropped
// when the date was built.
func weekKey(d models.Date, monday bool) int {
	return WeekStart(d, monday).EpochDays()
}

// Streak computes the current and best consecutive-week streaks. Multiple
// workouts in one week collapse into a single week bucket. The current
// streak is zero unless now's own week contains a workout.
func Streak(workouts []models.Workout, weekStartMonday bool, now models.Date) StreakResult {
	if len(workouts) == 0 {
		return StreakResult{}
	}

	weeks := make(map[int]bool, len(workouts))
	for _, w := range workouts {
		weeks[weekKey(w.Date, weekStartMonday)] = true
	}

	current := 0
	for key := weekKey(now, weekStartMonday); weeks[key]; key -= daysPerWeek {
		current++
	}

	keys := make([]int, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	best, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if keys[i-1]-keys[i] == daysPerWeek {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	if current > best {
		best = current
	}

	return StreakResult{Current: current, Best: best}
}

// DisplayStreak applies the manual streak override for presentation. A
// positive manualWeeks replaces the displayed current streak and raises the
// displayed best to at least that value. The computed result is never
// mutated or persisted with the override applied.
func DisplayStreak(computed StreakResult, manualWeeks int) StreakResult {
	if manualWeeks <= 0 {
		return computed
	}
	out := StreakResult{Current: manualWeeks, Best: computed.Best}
	if out.Best < manualWeeks {
		out.Best = manualWeeks
	}
	return out
}
