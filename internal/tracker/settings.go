package tracker

import (
	"context"

	"github.com/claude/repvault/internal/models"
)

// SettingsPatch is a partial settings update. Nil fields are left as they
// are; only the recognized fields below can change. Unknown keys arriving
// from the outside are dropped when decoding into this struct, consistently.
type SettingsPatch struct {
	WeekStartMonday   *bool   `json:"weekStartMonday,omitempty"`
	AutoAddExercises  *bool   `json:"autoAddExercises,omitempty"`
	WeightUnit        *string `json:"weightUnit,omitempty"`
	Theme             *string `json:"theme,omitempty"`
	ManualStreakWeeks *int    `json:"manualStreakWeeks,omitempty"`
}

// UpdateSettings merges the patch into the stored settings.
func (t *Tracker) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	if patch.WeightUnit != nil && *patch.WeightUnit != models.UnitLbs && *patch.WeightUnit != models.UnitKg {
		return invalidf("weightUnit", "must be %q or %q", models.UnitLbs, models.UnitKg)
	}
	if patch.ManualStreakWeeks != nil && *patch.ManualStreakWeeks < 0 {
		return invalidf("manualStreakWeeks", "must not be negative")
	}
	if patch.Theme != nil && *patch.Theme == "" {
		return invalidf("theme", "must not be empty")
	}

	return t.mutate(ctx, func(doc *models.Document) error {
		s := &doc.Settings
		if patch.WeekStartMonday != nil {
			s.WeekStartMonday = *patch.WeekStartMonday
		}
		if patch.AutoAddExercises != nil {
			s.AutoAddExercises = *patch.AutoAddExercises
		}
		if patch.WeightUnit != nil {
			s.WeightUnit = *patch.WeightUnit
		}
		if patch.Theme != nil {
			s.Theme = *patch.Theme
		}
		if patch.ManualStreakWeeks != nil {
			s.ManualStreakWeeks = *patch.ManualStreakWeeks
		}
		t.log.Info("settings updated")
		return nil
	})
}
