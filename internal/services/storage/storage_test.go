package storage

import (
	"os"
	"reflect"
	"testing"
)

func TestReadWriteRoundtrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	original := []byte(`[{"id":"1","type":"income","amount":100000}]`)
	if err := store.Write("transactions", original); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	read, err := store.Read("transactions")
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(read) != string(original) {
		t.Errorf("Content mismatch: got %q, want %q", read, original)
	}
}

func TestReadMissingKey(t *testing.T) {
	store, _ := New(t.TempDir())

	_, err := store.Read("nope")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestKeys(t *testing.T) {
	store, _ := New(t.TempDir())

	store.Write("transactions", []byte("[]"))
	store.Write("currency", []byte(`"IDR"`))

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"currency", "transactions"}) {
		t.Errorf("Keys = %v", keys)
	}
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	original := []byte(`{"savings_target":100000}`)
	if err := store.Write("savings_target", original); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	password := "testpassword123"
	if err := store.EnableEncryption(password); err != nil {
		t.Fatalf("Failed to enable encryption: %v", err)
	}
	if !store.IsEncrypted() {
		t.Error("Expected IsEncrypted() to return true")
	}

	// Verify the document is encrypted on disk
	raw, _ := os.ReadFile(store.keyPath("savings_target"))
	if !isAgeEncrypted(raw) {
		t.Error("Document should be encrypted on disk")
	}

	// Read should still return plaintext
	read, err := store.Read("savings_target")
	if err != nil {
		t.Fatalf("Failed to read encrypted document: %v", err)
	}
	if string(read) != string(original) {
		t.Errorf("Content mismatch after encryption: got %q, want %q", read, original)
	}

	// Writes while encrypted land encrypted
	if err := store.Write("currency", []byte(`"USD"`)); err != nil {
		t.Fatalf("Failed to write while encrypted: %v", err)
	}
	raw, _ = os.ReadFile(store.keyPath("currency"))
	if !isAgeEncrypted(raw) {
		t.Error("New document should be encrypted on disk")
	}

	// Lock and unlock
	store.Lock()
	if store.IsUnlocked() {
		t.Error("Expected store to be locked")
	}
	if _, err := store.Read("savings_target"); err == nil {
		t.Error("Expected read to fail while locked")
	}
	if err := store.Unlock(password); err != nil {
		t.Fatalf("Failed to unlock: %v", err)
	}

	read, err = store.Read("savings_target")
	if err != nil {
		t.Fatalf("Failed to read after unlock: %v", err)
	}
	if string(read) != string(original) {
		t.Errorf("Content mismatch after unlock")
	}

	// Disable encryption
	if err := store.DisableEncryption(password); err != nil {
		t.Fatalf("Failed to disable encryption: %v", err)
	}
	if store.IsEncrypted() {
		t.Error("Expected IsEncrypted() to return false after disable")
	}

	raw, _ = os.ReadFile(store.keyPath("savings_target"))
	if isAgeEncrypted(raw) {
		t.Error("Document should be decrypted on disk")
	}
	if string(raw) != string(original) {
		t.Errorf("Raw content mismatch after decryption")
	}
}

func TestWrongPassword(t *testing.T) {
	store, _ := New(t.TempDir())

	if err := store.Write("transactions", []byte("[]")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := store.EnableEncryption("correctpassword"); err != nil {
		t.Fatalf("Failed to enable encryption: %v", err)
	}

	store.Lock()

	if err := store.Unlock("wrongpassword"); err == nil {
		t.Error("Expected error with wrong password")
	}
	if err := store.DisableEncryption("wrongpassword"); err == nil {
		t.Error("Expected error disabling with wrong password")
	}
}

func TestPasswordTooShort(t *testing.T) {
	store, _ := New(t.TempDir())

	if err := store.EnableEncryption("short"); err == nil {
		t.Error("Expected error for short password")
	}
}

func TestEncryptionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, _ := New(dir)
	store.Write("transactions", []byte("[]"))
	if err := store.EnableEncryption("testpassword123"); err != nil {
		t.Fatalf("Failed to enable encryption: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	if !reopened.IsEncrypted() {
		t.Error("Reopened store should report encrypted")
	}
	if reopened.IsUnlocked() {
		t.Error("Reopened store should start locked")
	}
	if err := reopened.Unlock("testpassword123"); err != nil {
		t.Fatalf("Failed to unlock reopened store: %v", err)
	}
	if data, err := reopened.Read("transactions"); err != nil || string(data) != "[]" {
		t.Errorf("Read after reopen = %q, %v", data, err)
	}
}
