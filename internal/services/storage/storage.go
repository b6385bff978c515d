package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"filippo.io/age"
)

const (
	// ageHeader is the prefix of Age-encrypted files
	ageHeader = "age-encryption.org"

	// markerFile indicates encryption is enabled
	markerFile = ".encrypted"

	// verifyFile is used to validate the password
	verifyFile = ".encryption-verify"

	// verifyMagic is the expected content in the verify file
	verifyMagic = `{"magic":"fintrack-encryption-verify","version":1}`

	// docExt is the on-disk extension of stored documents
	docExt = ".json"
)

// Store is a keyed local document store. Each key maps to one JSON
// document on disk, written atomically and optionally Age-encrypted.
// It is the durable mirror of the in-memory application state.
type Store struct {
	baseDir   string
	encrypted bool
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
	mu        sync.RWMutex
}

// New creates a Store rooted at the given directory
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{baseDir: baseDir}

	// Check if encryption is enabled
	if _, err := os.Stat(filepath.Join(baseDir, markerFile)); err == nil {
		s.encrypted = true
	}

	return s, nil
}

// BaseDir returns the base directory
func (s *Store) BaseDir() string {
	return s.baseDir
}

// IsEncrypted returns true if the data directory is encrypted
func (s *Store) IsEncrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

// IsUnlocked returns true if encryption is disabled or has been unlocked
func (s *Store) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.encrypted || s.identity != nil
}

// Unlock decrypts the store with the given password
func (s *Store) Unlock(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return nil // Nothing to unlock
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verify password by decrypting the verification file
	encrypted, err := os.ReadFile(filepath.Join(s.baseDir, verifyFile))
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}

	decrypted, err := decryptData(encrypted, identity)
	if err != nil {
		return fmt.Errorf("incorrect password")
	}
	if string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect password (verification failed)")
	}

	s.identity = identity
	s.recipient, _ = age.NewScryptRecipient(password)

	return nil
}

// Lock clears the encryption key from memory
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.recipient = nil
}

// Read returns the document stored under key. A missing key reports
// os.ErrNotExist; callers treat that as "no prior data".
func (s *Store) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return nil, err
	}

	if isAgeEncrypted(data) {
		if s.identity == nil {
			return nil, fmt.Errorf("key %q is encrypted but the store is locked", key)
		}
		return decryptData(data, s.identity)
	}

	return data, nil
}

// Write stores the document under key, encrypting when enabled
func (s *Store) Write(key string, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.encrypted && s.recipient != nil {
		encrypted, err := encryptData(data, s.recipient)
		if err != nil {
			return fmt.Errorf("failed to encrypt key %q: %w", key, err)
		}
		data = encrypted
	}

	return s.atomicWrite(s.keyPath(key), data)
}

// Delete removes the document stored under key, if present
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Keys returns the keys of all stored documents, sorted
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), docExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), docExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.baseDir, key+docExt)
}

// atomicWrite writes data to a file atomically using a temp file
func (s *Store) atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// isAgeEncrypted checks if data starts with the Age encryption header
func isAgeEncrypted(data []byte) bool {
	return len(data) > len(ageHeader) && string(data[:len(ageHeader)]) == ageHeader
}
