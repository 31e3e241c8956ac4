package models

// SetEntry is a single logged set within a workout. ExerciseName references
// an ExerciseDef by name; the reference is plain text and may outlive the
// library entry (deleting an exercise does not rewrite history).
type SetEntry struct {
	ExerciseName string  `json:"exerciseName"`
	SetNumber    int     `json:"setNumber"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"` // 0 = bodyweight
	IsSuperset   bool    `json:"isSuperset"`
}

// Workout is a logged training session. ID is the creation timestamp in
// Unix milliseconds and is never reused.
type Workout struct {
	ID        int64      `json:"id"`
	Date      Date       `json:"date"`
	Name      string     `json:"name"`
	Notes     string     `json:"notes"`
	Exercises []SetEntry `json:"exercises"`
}

// ExerciseDef is an exercise library entry. Names are unique
// case-insensitively. Disabled entries are hidden from new-entry pickers
// but historical references stay intact.
type ExerciseDef struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	VideoLink   string `json:"videoLink,omitempty"`
	Disabled    bool   `json:"disabled"`
}

// Measurement is a body measurement log entry. All value fields are
// optional; nil means not recorded that day.
type Measurement struct {
	ID      int64    `json:"id"`
	Date    Date     `json:"date"`
	Weight  *float64 `json:"weight,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
	Chest   *float64 `json:"chest,omitempty"`
	Waist   *float64 `json:"waist,omitempty"`
	Hips    *float64 `json:"hips,omitempty"`
	Biceps  *float64 `json:"biceps,omitempty"`
	Thighs  *float64 `json:"thighs,omitempty"`
	Calves  *float64 `json:"calves,omitempty"`
}

// Weight units.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// Settings holds user preferences. ManualStreakWeeks, when positive,
// overrides the displayed current streak; it never alters the computed one.
type Settings struct {
	WeekStartMonday   bool   `json:"weekStartMonday"`
	AutoAddExercises  bool   `json:"autoAddExercises"`
	WeightUnit        string `json:"weightUnit"`
	Theme             string `json:"theme"`
	ManualStreakWeeks int    `json:"manualStreakWeeks"`
}

// Document is the root of all persisted state: the single unit of
// encryption, persistence, and backup.
type Document struct {
	Workouts     []Workout     `json:"workouts"`
	Exercises    []ExerciseDef `json:"exercises"`
	Measurements []Measurement `json:"measurements"`
	Settings     Settings      `json:"settings"`
}

// Normalize fills defaults for fields missing from older documents and
// replaces nil collections with empty ones.
func (d *Document) Normalize() {
	if d.Workouts == nil {
		d.Workouts = []Workout{}
	}
	if d.Exercises == nil {
		d.Exercises = []ExerciseDef{}
	}
	if d.Measurements == nil {
		d.Measurements = []Measurement{}
	}
	if d.Settings.WeightUnit == "" {
		d.Settings.WeightUnit = UnitLbs
	}
	if d.Settings.Theme == "" {
		d.Settings.Theme = defaultTheme
	}
	if d.Settings.ManualStreakWeeks < 0 {
		d.Settings.ManualStreakWeeks = 0
	}
}

// Clone returns a deep copy of the document. Snapshots handed to readers
// must never alias the tracker's own collections.
func (d *Document) Clone() *Document {
	out := &Document{
		Workouts:     make([]Workout, len(d.Workouts)),
		Exercises:    make([]ExerciseDef, len(d.Exercises)),
		Measurements: make([]Measurement, len(d.Measurements)),
		Settings:     d.Settings,
	}
	for i, w := range d.Workouts {
		out.Workouts[i] = w.Clone()
	}
	copy(out.Exercises, d.Exercises)
	for i, m := range d.Measurements {
		out.Measurements[i] = m.Clone()
	}
	return out
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = make([]SetEntry, len(w.Exercises))
	copy(out.Exercises, w.Exercises)
	return out
}

// Clone returns a deep copy of the measurement.
func (m Measurement) Clone() Measurement {
	out := m
	out.Weight = cloneFloat(m.Weight)
	out.BodyFat = cloneFloat(m.BodyFat)
	out.Chest = cloneFloat(m.Chest)
	out.Waist = cloneFloat(m.Waist)
	out.Hips = cloneFloat(m.Hips)
	out.Biceps = cloneFloat(m.Biceps)
	out.Thighs = cloneFloat(m.Thighs)
	out.Calves = cloneFloat(m.Calves)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
