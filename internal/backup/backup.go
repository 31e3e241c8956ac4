// Package backup exports and restores the application document as an
// encrypted file, independent of the store.
package backup

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/vault"
)

// Version identifies the backup envelope layout.
const Version = "1.0"

// Extension is the backup file extension.
const Extension = ".workoutbackup"

// Decrypted envelopes shorter than this are implausible and treated as
// corrupt rather than imported as empty state.
const minPlausibleSize = 10

// Envelope is the backup file payload: the full document plus metadata.
type Envelope struct {
	ID           string               `json:"id"`
	Version      string               `json:"version"`
	Timestamp    string               `json:"timestamp"`
	Workouts     []models.Workout     `json:"workouts"`
	Exercises    []models.ExerciseDef `json:"exercises"`
	Measurements []models.Measurement `json:"measurements"`
	Settings     models.Settings      `json:"settings"`
}

// FileName returns the backup file name for the given date.
func FileName(date models.Date) string {
	return fmt.Sprintf("WorkoutTracker_Backup_%s%s", date.String(), Extension)
}

// Export writes an encrypted backup of doc into dir and returns the full
// path. The ciphertext is base64-encoded so the file stays plain text.
func Export(doc *models.Document, session *vault.Session, dir string, now time.Time) (string, error) {
	env := Envelope{
		ID:           uuid.NewString(),
		Version:      Version,
		Timestamp:    now.Format(time.RFC3339),
		Workouts:     doc.Workouts,
		Exercises:    doc.Exercises,
		Measurements: doc.Measurements,
		Settings:     doc.Settings,
	}

	plaintext, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("serializing backup: %w", err)
	}
	sealed, err := session.Seal(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypting backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	path := filepath.Join(dir, FileName(models.DateOf(now)))
	encoded := base64.StdEncoding.EncodeToString(sealed)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}
	return path, nil
}

// Restore reads a backup file and returns the document it contains. Every
// failure is visible: wrong passphrase surfaces vault.ErrDecrypt, and an
// implausibly short or unparsable payload is an error rather than silent
// data loss. The caller swaps its state only on success.
func Restore(path string, session *vault.Session) (*models.Document, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("decoding backup file: %w", err)
	}

	plaintext, err := session.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("decrypting backup: %w", err)
	}
	if len(plaintext) < minPlausibleSize {
		return nil, fmt.Errorf("backup payload implausibly short (%d bytes)", len(plaintext))
	}

	var env Envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return nil, fmt.Errorf("parsing backup: %w", err)
	}

	doc := &models.Document{
		Workouts:     env.Workouts,
		Exercises:    env.Exercises,
		Measurements: env.Measurements,
		Settings:     env.Settings,
	}
	doc.Normalize()
	return doc, nil
}
