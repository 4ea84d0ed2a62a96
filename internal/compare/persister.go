package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Persister loads and saves a selection.
type Persister interface {
	// Load returns the stored selection. A missing value is an empty
	// selection, not an error. Undecodable data returns ErrCorruptSelection.
	Load(ctx context.Context) (Selection, error)

	// Save replaces the stored selection.
	Save(ctx context.Context, sel Selection) error
}

// Storage is a string key/value store with browser local-storage semantics.
type Storage interface {
	// GetItem returns the value for key; ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key.
	SetItem(ctx context.Context, key, value string) error
}

// encode serializes a selection as a JSON array. A nil selection encodes
// as "[]" rather than "null".
func encode(sel Selection) ([]byte, error) {
	if sel == nil {
		sel = Selection{}
	}
	return json.Marshal(sel)
}

func decode(data []byte) (Selection, error) {
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSelection, err)
	}
	if sel == nil {
		sel = Selection{}
	}
	return sel, nil
}

// StoragePersister keeps the selection under one key of a Storage.
type StoragePersister struct {
	storage Storage
	key     string
}

// NewStoragePersister returns a persister for key in storage.
// An empty key uses StorageKey.
func NewStoragePersister(storage Storage, key string) *StoragePersister {
	if key == "" {
		key = StorageKey
	}
	return &StoragePersister{storage: storage, key: key}
}

// Load implements Persister.
func (p *StoragePersister) Load(ctx context.Context) (Selection, error) {
	value, ok, err := p.storage.GetItem(ctx, p.key)
	if err != nil {
		return nil, err
	}
	if !ok || value == "" {
		return Selection{}, nil
	}
	return decode([]byte(value))
}

// Save implements Persister.
func (p *StoragePersister) Save(ctx context.Context, sel Selection) error {
	data, err := encode(sel)
	if err != nil {
		return err
	}
	return p.storage.SetItem(ctx, p.key, string(data))
}

// FilePersister keeps the selection in a JSON file.
type FilePersister struct {
	path string
}

// NewFilePersister returns a persister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the file location.
func (p *FilePersister) Path() string {
	return p.path
}

// Load implements Persister.
func (p *FilePersister) Load(_ context.Context) (Selection, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Selection{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return Selection{}, nil
	}
	return decode(data)
}

// Save implements Persister. The file is replaced atomically.
func (p *FilePersister) Save(_ context.Context, sel Selection) error {
	data, err := encode(sel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".selection-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write selection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write selection: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", p.path, err)
	}
	return nil
}

// MemoryStorage is an in-memory Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem implements Storage.
func (m *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Storage.
func (m *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// NewMemoryPersister returns a persister over a fresh MemoryStorage.
func NewMemoryPersister() *StoragePersister {
	return NewStoragePersister(NewMemoryStorage(), StorageKey)
}
