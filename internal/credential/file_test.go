package credential

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cred", "credential.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Save("token-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "token-abc" {
		t.Fatalf("expected token-abc, got %q", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credential.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear on empty slot: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credential.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Save("first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "second" {
		t.Fatalf("expected second, got %q", token)
	}
}

func TestFileStore_EmptyPathRejected(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
