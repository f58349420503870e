package matchcache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/plantheque/backend/internal/domain"
)

func TestFileStore_StoreAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewFileStore(path)

	if err := store.Store("lavandula angustifolia", "rustica", "https://conseils.example/lavande"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	url, err := store.Lookup("lavandula angustifolia", "rustica")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if url != "https://conseils.example/lavande" {
		t.Errorf("url = %q", url)
	}
}

func TestFileStore_Miss(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"))

	t.Run("unknown name", func(t *testing.T) {
		_, err := store.Lookup("rosa canina", "rustica")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("known name on other source", func(t *testing.T) {
		if err := store.Store("rosa canina", "rustica", "https://x.example/rosa"); err != nil {
			t.Fatalf("Store: %v", err)
		}
		_, err := store.Lookup("rosa canina", "autre")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	store := NewFileStore(path)
	if err := store.Store("lavandula angustifolia", "rustica", "https://conseils.example/lavande"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Store("lavandula angustifolia", "jardinage", "https://autre.example/lavande"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	reopened := NewFileStore(path)
	if reopened.Entries() != 1 {
		t.Errorf("Entries = %d, want 1 plant", reopened.Entries())
	}

	url, err := reopened.Lookup("lavandula angustifolia", "jardinage")
	if err != nil {
		t.Fatalf("Lookup after restart: %v", err)
	}
	if url != "https://autre.example/lavande" {
		t.Errorf("url = %q", url)
	}
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if store.Entries() != 0 {
		t.Errorf("Entries = %d, want 0", store.Entries())
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	store := NewFileStore(path)
	if store.Entries() != 0 {
		t.Errorf("Entries = %d, want 0 after corrupt file", store.Entries())
	}

	// The store must still accept writes afterwards
	if err := store.Store("rosa canina", "rustica", "https://x.example/rosa"); err != nil {
		t.Fatalf("Store after corrupt load: %v", err)
	}
	if store.Entries() != 1 {
		t.Errorf("Entries = %d, want 1", store.Entries())
	}
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	store := NewFileStore(path)

	if err := store.Store("rosa canina", "rustica", "https://x.example/rosa"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("cache file not created: %v", err)
	}
}

func TestFileStore_OverwritesExistingMapping(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"))

	if err := store.Store("rosa canina", "rustica", "https://x.example/old"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Store("rosa canina", "rustica", "https://x.example/new"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	url, err := store.Lookup("rosa canina", "rustica")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if url != "https://x.example/new" {
		t.Errorf("url = %q, want newest mapping", url)
	}
	if store.Entries() != 1 {
		t.Errorf("Entries = %d, want 1", store.Entries())
	}
}
