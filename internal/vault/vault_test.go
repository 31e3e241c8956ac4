package vault

import (
	"bytes"
	"errors"
	"testing"
)

// TestSealOpenRoundTrip verifies encryption round-trips under the same
// passphrase.
func TestSealOpenRoundTrip(t *testing.T) {
	s, err := NewSession("correct horse battery staple")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	plaintext := []byte(`{"workouts":[],"settings":{"weightUnit":"lbs"}}`)
	sealed, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatal("sealed output contains plaintext")
	}

	opened, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("Open = %q, want %q", opened, plaintext)
	}
}

// TestWrongPassphrase verifies a wrong passphrase yields ErrDecrypt,
// never silently empty data.
func TestWrongPassphrase(t *testing.T) {
	s1, _ := NewSession("correct")
	s2, _ := NewSession("wrong")

	sealed, err := s1.Seal([]byte("secret training log"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := s2.Open(sealed); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open with wrong passphrase: err = %v, want ErrDecrypt", err)
	}
}

// TestCorruptedCiphertext verifies tampered or truncated input yields
// ErrDecrypt rather than garbage plaintext.
func TestCorruptedCiphertext(t *testing.T) {
	s, _ := NewSession("passphrase")
	sealed, err := s.Seal([]byte("data"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	flipped := append([]byte(nil), sealed...)
	flipped[len(flipped)-1] ^= 0xff
	if _, err := s.Open(flipped); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open(tampered): err = %v, want ErrDecrypt", err)
	}

	for _, n := range []int{0, 5, saltSize, saltSize + 3} {
		if _, err := s.Open(sealed[:n]); !errors.Is(err, ErrDecrypt) {
			t.Errorf("Open(truncated to %d): err = %v, want ErrDecrypt", n, err)
		}
	}
}

// TestSealIsNondeterministic verifies each Seal draws a fresh salt and
// nonce, so identical documents never produce identical ciphertext.
func TestSealIsNondeterministic(t *testing.T) {
	s, _ := NewSession("passphrase")
	a, err := s.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("two Seal calls produced identical output")
	}
}

// TestEmptyPassphraseRejected verifies session creation fails fast on an
// empty passphrase.
func TestEmptyPassphraseRejected(t *testing.T) {
	if _, err := NewSession(""); err == nil {
		t.Error("expected error for empty passphrase")
	}
}
