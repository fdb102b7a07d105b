package quotecart

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Persistence is the durable snapshot contract behind the store. Load returns
// nil (not an error) when no usable snapshot exists.
type Persistence interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
}

// FilePersistence keeps the cart as one JSON file on disk.
type FilePersistence struct {
	path string
}

// NewFilePersistence stores the snapshot at the given path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// Load reads and decodes the snapshot. Missing or corrupt files yield an
// empty cart.
func (p *FilePersistence) Load() ([]LineItem, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// Save overwrites the snapshot via a temp-file rename.
func (p *FilePersistence) Save(items []LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// MemoryPersistence is an in-memory snapshot used by tests.
type MemoryPersistence struct {
	snapshot []LineItem
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Load() ([]LineItem, error) {
	if p.snapshot == nil {
		return nil, nil
	}
	out := make([]LineItem, len(p.snapshot))
	copy(out, p.snapshot)
	return out, nil
}

func (p *MemoryPersistence) Save(items []LineItem) error {
	p.snapshot = make([]LineItem, len(items))
	copy(p.snapshot, items)
	return nil
}
