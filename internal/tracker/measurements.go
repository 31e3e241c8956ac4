package tracker

import (
	"context"

	"github.com/claude/repvault/internal/models"
)

// MeasurementValues carries the optional numeric fields of a measurement.
// Nil means not recorded.
type MeasurementValues struct {
	Weight  *float64
	BodyFat *float64
	Chest   *float64
	Waist   *float64
	Hips    *float64
	Biceps  *float64
	Thighs  *float64
	Calves  *float64
}

func (v MeasurementValues) empty() bool {
	return v.Weight == nil && v.BodyFat == nil && v.Chest == nil && v.Waist == nil &&
		v.Hips == nil && v.Biceps == nil && v.Thighs == nil && v.Calves == nil
}

// AddMeasurement appends a body measurement entry, returning its id. At
// least one value must be present.
func (t *Tracker) AddMeasurement(ctx context.Context, date models.Date, values MeasurementValues) (int64, error) {
	if date.IsZero() {
		return 0, invalidf("date", "date is required")
	}
	if values.empty() {
		return 0, invalidf("values", "at least one measurement value is required")
	}

	var id int64
	err := t.mutate(ctx, func(doc *models.Document) error {
		id = nextID(measurementIDs(doc))
		doc.Measurements = append(doc.Measurements, models.Measurement{
			ID:      id,
			Date:    date,
			Weight:  values.Weight,
			BodyFat: values.BodyFat,
			Chest:   values.Chest,
			Waist:   values.Waist,
			Hips:    values.Hips,
			Biceps:  values.Biceps,
			Thighs:  values.Thighs,
			Calves:  values.Calves,
		})
		t.log.Info("measurement added", "id", id, "date", date.String())
		return nil
	})
	return id, err
}

// DeleteMeasurement removes a measurement. Unknown ids are a no-op.
func (t *Tracker) DeleteMeasurement(ctx context.Context, id int64) error {
	return t.mutate(ctx, func(doc *models.Document) error {
		for i := range doc.Measurements {
			if doc.Measurements[i].ID == id {
				doc.Measurements = append(doc.Measurements[:i], doc.Measurements[i+1:]...)
				t.log.Info("measurement deleted", "id", id)
				return nil
			}
		}
		return nil
	})
}
