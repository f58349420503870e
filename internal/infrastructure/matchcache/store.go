package matchcache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/plantheque/backend/internal/domain"
)

// FileStore is a thread-safe match cache persisted as a single JSON file.
// The structure on disk mirrors the in-memory one: normalized latin name
// to source site to canonical URL. The file is human-readable on purpose;
// a wrong mapping can be fixed with a text editor.
type FileStore struct {
	path  string
	data  map[string]map[string]string
	mutex sync.RWMutex
}

// NewFileStore creates a match cache backed by the JSON file at path.
// A missing file simply starts an empty cache; an unreadable or corrupt
// one is logged and abandoned, because resolutions can always be
// recomputed.
func NewFileStore(path string) *FileStore {
	store := &FileStore{
		path: path,
		data: make(map[string]map[string]string),
	}
	store.load()
	return store
}

func (s *FileStore) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[CACHE] Reading %s failed: %v", s.path, err)
		}
		return
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("[CACHE] %s is corrupt, starting empty: %v", s.path, err)
		s.data = make(map[string]map[string]string)
		return
	}
	log.Printf("[CACHE] Loaded %d mappings from %s", len(s.data), s.path)
}

// Lookup returns the cached URL for the normalized name on the given
// source, or ErrCacheMiss.
func (s *FileStore) Lookup(normalizedName, source string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	url, ok := s.data[normalizedName][source]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return url, nil
}

// Store records a mapping and rewrites the backing file. The write is
// atomic at the whole-file level: encode everything, then replace.
func (s *FileStore) Store(normalizedName, source, url string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data[normalizedName] == nil {
		s.data[normalizedName] = make(map[string]string)
	}
	s.data[normalizedName][source] = url

	return s.flush()
}

// flush rewrites the whole file. Caller holds the write lock.
func (s *FileStore) flush() error {
	jsonData, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding match cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, jsonData, 0o644); err != nil {
		return fmt.Errorf("writing match cache: %w", err)
	}
	return nil
}

// Entries returns the number of distinct plants in the cache
func (s *FileStore) Entries() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
