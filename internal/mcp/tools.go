package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
)

// defaultDateRange returns start/end defaulting to the last 30 days.
func defaultDateRange(startStr, endStr string) (models.Date, models.Date, error) {
	var start, end models.Date
	var err error

	if endStr != "" {
		end, err = models.ParseDate(endStr)
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
	} else {
		end = models.Today()
	}

	if startStr != "" {
		start, err = models.ParseDate(startStr)
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
	} else {
		start = end.AddDays(-30)
	}

	return start, end, nil
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query workouts in a date range. Returns each workout with its full set list (exercise, set number, reps, weight, superset flag)."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD or RFC 3339). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to today.")),
	mcp.WithString("exercise", mcp.Description("Only return workouts containing this exercise (case-insensitive substring match)")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Retrieve a single workout by id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Workout id")),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Current and best consecutive-week workout streaks. Returns both the computed values and the displayed values after any manual streak override."),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Aggregate workout totals: all-time count and this calendar month's count."),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Heaviest recorded set per exercise (weight > 0 only), sorted by exercise name."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Exercise library entries with category, subcategory, and video link."),
	mcp.WithBoolean("include_disabled", mcp.Description("Include entries hidden from new-entry pickers. Defaults to false.")),
)

var toolGetMeasurements = mcp.NewTool("get_measurements",
	mcp.WithDescription("Body measurement entries (weight, body fat, girths) in a date range."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to today.")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	exercise := req.GetString("exercise", "")

	workouts := filterWorkouts(h.ds.Snapshot().Workouts, start, end, exercise)

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireFloat("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	for _, w := range h.ds.Snapshot().Workouts {
		if w.ID == int64(id) {
			result, err := mcp.NewToolResultJSON(w)
			if err != nil {
				return mcp.NewToolResultError("serialization failed"), nil
			}
			return result, nil
		}
	}
	return mcp.NewToolResultError("workout not found"), nil
}

func (h *handlers) getStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := models.Today()
	computed := h.ds.Streak(now)
	displayed := stats.DisplayStreak(computed, h.ds.Snapshot().Settings.ManualStreakWeeks)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"computed":  computed,
		"displayed": displayed,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.Stats(models.Today()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.PersonalRecords())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var exercises []models.ExerciseDef
	if req.GetBool("include_disabled", false) {
		exercises = h.ds.Snapshot().Exercises
	} else {
		exercises = h.ds.ActiveExercises()
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMeasurements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	var out []models.Measurement
	for _, m := range h.ds.Snapshot().Measurements {
		if !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, m)
		}
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
