package models

const defaultTheme = "dark"

// Categories used when auto-adding exercises that are not in the library.
const (
	AutoAddCategory    = "Other"
	AutoAddSubcategory = "General"
)

// DefaultSettings returns settings for a fresh document.
func DefaultSettings() Settings {
	return Settings{
		WeekStartMonday:   false,
		AutoAddExercises:  true,
		WeightUnit:        UnitLbs,
		Theme:             defaultTheme,
		ManualStreakWeeks: 0,
	}
}

// DefaultDocument returns a fresh document seeded with the starter
// exercise library.
func DefaultDocument() *Document {
	doc := &Document{
		Workouts:     []Workout{},
		Exercises:    starterExercises(),
		Measurements: []Measurement{},
		Settings:     DefaultSettings(),
	}
	return doc
}

func starterExercises() []ExerciseDef {
	return []ExerciseDef{
		{Name: "Bench Press", Category: "Chest", Subcategory: "Barbell"},
		{Name: "Incline Dumbbell Press", Category: "Chest", Subcategory: "Dumbbell"},
		{Name: "Squat", Category: "Legs", Subcategory: "Barbell"},
		{Name: "Leg Press", Category: "Legs", Subcategory: "Machine"},
		{Name: "Romanian Deadlift", Category: "Legs", Subcategory: "Barbell"},
		{Name: "Deadlift", Category: "Back", Subcategory: "Barbell"},
		{Name: "Barbell Row", Category: "Back", Subcategory: "Barbell"},
		{Name: "Pull Up", Category: "Back", Subcategory: "Bodyweight"},
		{Name: "Lat Pulldown", Category: "Back", Subcategory: "Machine"},
		{Name: "Overhead Press", Category: "Shoulders", Subcategory: "Barbell"},
		{Name: "Lateral Raise", Category: "Shoulders", Subcategory: "Dumbbell"},
		{Name: "Barbell Curl", Category: "Arms", Subcategory: "Biceps"},
		{Name: "Triceps Pushdown", Category: "Arms", Subcategory: "Triceps"},
		{Name: "Plank", Category: "Core", Subcategory: "Bodyweight"},
	}
}
