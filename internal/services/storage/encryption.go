package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// EnableEncryption encrypts every stored document with the given password
func (s *Store) EnableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return fmt.Errorf("encryption is already enabled")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verification file first, so the password can be checked on unlock
	encrypted, err := encryptData([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt verification file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, verifyFile), encrypted, 0644); err != nil {
		return fmt.Errorf("failed to write verification file: %w", err)
	}

	// Re-encrypt every stored document in place
	if err := s.recodeAll(func(plain []byte) ([]byte, error) {
		return encryptData(plain, recipient)
	}, nil); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.baseDir, markerFile), []byte{}, 0644); err != nil {
		return fmt.Errorf("failed to write encryption marker: %w", err)
	}

	s.encrypted = true
	s.identity = identity
	s.recipient = recipient
	return nil
}

// DisableEncryption decrypts every stored document back to plaintext
func (s *Store) DisableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return fmt.Errorf("encryption is not enabled")
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verify the password before touching any document
	encrypted, err := os.ReadFile(filepath.Join(s.baseDir, verifyFile))
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}
	if plain, err := decryptData(encrypted, identity); err != nil || string(plain) != verifyMagic {
		return fmt.Errorf("incorrect password")
	}

	if err := s.recodeAll(nil, identity); err != nil {
		return err
	}

	os.Remove(filepath.Join(s.baseDir, markerFile))
	os.Remove(filepath.Join(s.baseDir, verifyFile))

	s.encrypted = false
	s.identity = nil
	s.recipient = nil
	return nil
}

// recodeAll rewrites every stored document, either encrypting plaintext
// (encode set) or decrypting ciphertext (identity set).
func (s *Store) recodeAll(encode func([]byte) ([]byte, error), identity *age.ScryptIdentity) error {
	keys, err := s.Keys()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, key := range keys {
		path := s.keyPath(key)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", key, err)
		}

		var out []byte
		if encode != nil {
			if isAgeEncrypted(data) {
				continue // already encrypted
			}
			out, err = encode(data)
		} else {
			if !isAgeEncrypted(data) {
				continue // already plaintext
			}
			out, err = decryptData(data, identity)
		}
		if err != nil {
			return fmt.Errorf("failed to recode %q: %w", key, err)
		}

		if err := s.atomicWrite(path, out); err != nil {
			return fmt.Errorf("failed to rewrite %q: %w", key, err)
		}
	}
	return nil
}

// encryptData encrypts data using Age with the given recipient
func encryptData(data []byte, recipient *age.ScryptRecipient) ([]byte, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decryptData decrypts Age-encrypted data using the given identity
func decryptData(data []byte, identity *age.ScryptIdentity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
