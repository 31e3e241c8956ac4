package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/vault"
)

// DocumentKey is the record key under which the whole application document
// is stored. The store holds exactly one such record.
const DocumentKey = "workout_tracker_data"

// DocumentStore serializes, encrypts, and persists the application document
// as a single record.
type DocumentStore struct {
	records *RecordStore
	session *vault.Session
}

// NewDocumentStore composes a record store with an encryption session.
func NewDocumentStore(records *RecordStore, session *vault.Session) *DocumentStore {
	return &DocumentStore{records: records, session: session}
}

// Save serializes doc to canonical JSON, encrypts it, and overwrites the
// record under key.
func (s *DocumentStore) Save(ctx context.Context, key string, doc *models.Document) error {
	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	sealed, err := s.session.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("encrypting document: %w", err)
	}
	return s.records.Put(ctx, key, sealed)
}

// Load reads and decrypts the document under key. A missing record returns
// (nil, false, nil). A decryption failure surfaces vault.ErrDecrypt so the
// caller can distinguish a wrong passphrase from an empty store.
func (s *DocumentStore) Load(ctx context.Context, key string) (*models.Document, bool, error) {
	sealed, ok, err := s.records.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	plaintext, err := s.session.Open(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("decrypting document: %w", err)
	}

	doc := &models.Document{}
	if err := json.Unmarshal(plaintext, doc); err != nil {
		return nil, false, fmt.Errorf("parsing document: %w", err)
	}
	doc.Normalize()
	return doc, true, nil
}
