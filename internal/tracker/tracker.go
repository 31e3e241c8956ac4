// Package tracker is the in-memory source of truth for all application
// state. Every mutation validates its input, updates the document, persists
// the whole document through the encrypted store, and then notifies
// subscribers so derived views can recompute.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
	"github.com/claude/repvault/internal/storage"
)

// Tracker owns the document exclusively. Readers get deep-copy snapshots;
// all mutation goes through its operations.
type Tracker struct {
	store *storage.DocumentStore
	log   *slog.Logger

	mu   sync.Mutex
	doc  *models.Document
	subs []func()
}

// New creates a Tracker around an encrypted document store.
func New(store *storage.DocumentStore, log *slog.Logger) *Tracker {
	return &Tracker{
		store: store,
		log:   log,
		doc:   models.DefaultDocument(),
	}
}

// Load reads the persisted document, starting from the default document
// when the store is empty. A decryption failure is returned untouched so
// the caller can prompt for the passphrase again instead of silently
// starting fresh.
func (t *Tracker) Load(ctx context.Context) error {
	doc, ok, err := t.store.Load(ctx, storage.DocumentKey)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if ok {
		t.doc = doc
		t.log.Info("document loaded",
			"workouts", len(doc.Workouts),
			"exercises", len(doc.Exercises),
			"measurements", len(doc.Measurements))
	} else {
		t.doc = models.DefaultDocument()
		t.log.Info("no stored document, starting fresh")
	}
	return nil
}

// ReplaceDocument swaps in a fully-formed document (restore path) and
// persists it. The previous document stays in place if doc is nil.
func (t *Tracker) ReplaceDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return fmt.Errorf("replace document: nil document")
	}
	doc.Normalize()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.doc = doc.Clone()
	return t.persistLocked(ctx)
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run synchronously on the mutating goroutine, outside the tracker lock.
func (t *Tracker) Subscribe(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

// persistLocked saves the document. It must be called with t.mu held;
// holding the lock serializes overlapping saves so the single record is
// never interleaved. A failed save does not roll back the in-memory
// mutation: the state is transiently ahead of the store and the next
// successful save corrects it.
func (t *Tracker) persistLocked(ctx context.Context) error {
	if err := t.store.Save(ctx, storage.DocumentKey, t.doc); err != nil {
		t.log.Error("save failed, in-memory state retained", "error", err)
		return err
	}
	return nil
}

// mutate runs fn on the document under the lock, persists, and notifies.
// fn errors abort before any persistence or notification.
func (t *Tracker) mutate(ctx context.Context, fn func(doc *models.Document) error) error {
	t.mu.Lock()
	if err := fn(t.doc); err != nil {
		t.mu.Unlock()
		return err
	}
	saveErr := t.persistLocked(ctx)
	subs := make([]func(), len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return saveErr
}

// Snapshot returns a deep copy of the entire document.
func (t *Tracker) Snapshot() *models.Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Clone()
}

// Workouts returns a snapshot of all workouts.
func (t *Tracker) Workouts() []models.Workout {
	return t.Snapshot().Workouts
}

// Exercises returns a snapshot of the full exercise library, disabled
// entries included.
func (t *Tracker) Exercises() []models.ExerciseDef {
	return t.Snapshot().Exercises
}

// ActiveExercises returns the library entries offered to new-entry pickers:
// everything not disabled.
func (t *Tracker) ActiveExercises() []models.ExerciseDef {
	all := t.Exercises()
	out := make([]models.ExerciseDef, 0, len(all))
	for _, e := range all {
		if !e.Disabled {
			out = append(out, e)
		}
	}
	return out
}

// Measurements returns a snapshot of all measurements.
func (t *Tracker) Measurements() []models.Measurement {
	return t.Snapshot().Measurements
}

// Settings returns the current settings.
func (t *Tracker) Settings() models.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Settings
}

// Streak computes the current and best workout streaks as of now.
func (t *Tracker) Streak(now models.Date) stats.StreakResult {
	t.mu.Lock()
	workouts := t.doc.Workouts
	monday := t.doc.Settings.WeekStartMonday
	result := stats.Streak(workouts, monday, now)
	t.mu.Unlock()
	return result
}

// Stats computes aggregate totals as of now.
func (t *Tracker) Stats(now models.Date) stats.Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.Aggregate(t.doc.Workouts, now)
}

// PersonalRecords computes per-exercise records.
func (t *Tracker) PersonalRecords() []stats.PR {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.PersonalRecords(t.doc.Workouts)
}
