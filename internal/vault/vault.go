// Package vault derives an encryption key from the user's passphrase and
// seals/opens the serialized document with AES-256-GCM.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// ErrDecrypt is returned when sealed data cannot be authenticated: wrong
// passphrase or corrupted ciphertext. It is never conflated with "no data".
var ErrDecrypt = errors.New("vault: decryption failed")

const (
	saltSize = 16
	keySize  = 32

	// argon2id parameters
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// Session holds the passphrase for the lifetime of the process. Changing
// the passphrase requires a full reload with a new session.
type Session struct {
	passphrase []byte
}

// NewSession creates a session from a non-empty passphrase.
func NewSession(passphrase string) (*Session, error) {
	if passphrase == "" {
		return nil, errors.New("vault: passphrase must not be empty")
	}
	return &Session{passphrase: []byte(passphrase)}, nil
}

// Seal encrypts plaintext under a key derived from the session passphrase.
// Output layout: salt || nonce || ciphertext. A fresh salt and nonce are
// drawn for every call.
func (s *Session) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal. Truncated input or an
// authentication failure yields ErrDecrypt.
func (s *Session) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize {
		return nil, ErrDecrypt
	}
	salt := sealed[:saltSize]

	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	rest := sealed[saltSize:]
	if len(rest) < gcm.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

func (s *Session) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}
