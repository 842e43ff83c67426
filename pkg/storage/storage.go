package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const DefaultDataDir = "data/ui"

// Store is the persistent string key-value surface the UI layer writes
// through. It is best-effort: callers must keep working when any of these
// return errors (missing data dir, read-only disk, quota).
type Store interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// FileStore keeps all entries in a single JSON file. The file is loaded
// lazily on first access and rewritten whole on every mutation; the data
// volume here (a handful of panel positions) makes that fine.
type FileStore struct {
	mu     sync.Mutex
	path   string
	items  map[string]string
	loaded bool
}

func NewFileStore(dir, name string) *FileStore {
	if dir == "" {
		dir = DefaultDataDir
	}
	return &FileStore{path: filepath.Join(dir, name)}
}

func (f *FileStore) load() error {
	if f.loaded {
		return nil
	}
	f.items = make(map[string]string)
	f.loaded = true

	data, err := os.ReadFile(f.path)
	if err != nil {
		// No file yet is not an error, just an empty store.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &f.items)
}

func (f *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	file, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.items)
}

func (f *FileStore) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return "", false, err
	}
	v, ok := f.items[key]
	return v, ok, nil
}

func (f *FileStore) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		// A corrupt file should not make the store permanently read-only.
		f.items = make(map[string]string)
	}
	f.items[key] = value
	return f.save()
}

func (f *FileStore) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.items[key]; !ok {
		return nil
	}
	delete(f.items, key)
	return f.save()
}

// MemStore is an in-memory Store for tests and for hosts that have no
// writable data directory.
type MemStore struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]string)}
}

func (m *MemStore) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemStore) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
