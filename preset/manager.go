package preset

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

const maxRecentlyUsed = 10

// Manager serves the preset catalog and tracks recently used sub-presets.
// The catalog itself is immutable after construction; only the MRU list
// changes, and it lives in memory for the lifetime of the process.
type Manager struct {
	mu           sync.RWMutex
	categories   []Category
	recentlyUsed []string
	index        map[string]SubPreset // sub-preset ID → sub-preset
}

// NewManager builds a manager from the catalog JSON at filePath, or from the
// built-in catalog if filePath is empty or the file does not exist. Returns
// an error only on unexpected I/O or parse failures.
func NewManager(filePath string) (*Manager, error) {
	categories := builtinCategories

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			var loaded []Category
			if err := json.Unmarshal(data, &loaded); err != nil {
				return nil, err
			}
			categories = loaded
		case errors.Is(err, os.ErrNotExist):
			// Fall through to the built-in catalog.
		default:
			return nil, err
		}
	}

	index := make(map[string]SubPreset)
	for _, c := range categories {
		for _, sp := range c.SubPresets {
			index[sp.ID] = sp
		}
	}

	return &Manager{
		categories:   categories,
		recentlyUsed: []string{},
		index:        index,
	}, nil
}

// Catalog returns a snapshot of the catalog and MRU list (safe copy under RLock).
func (m *Manager) Catalog() Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]Category, len(m.categories))
	copy(categories, m.categories)
	ru := make([]string, len(m.recentlyUsed))
	copy(ru, m.recentlyUsed)
	return Catalog{Categories: categories, RecentlyUsed: ru}
}

// Lookup returns the sub-preset with the given ID, or ErrNotFound.
func (m *Manager) Lookup(id string) (SubPreset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sp, ok := m.index[id]
	if !ok {
		return SubPreset{}, ErrNotFound
	}
	return sp, nil
}

// MarkUsed prepends id to the recentlyUsed list (deduplicating and capping at
// 10). A non-existent id is silently ignored.
func (m *Manager) MarkUsed(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[id]; !ok {
		return
	}

	newList := []string{id}
	for _, eid := range m.recentlyUsed {
		if eid == id {
			continue
		}
		newList = append(newList, eid)
		if len(newList) == maxRecentlyUsed {
			break
		}
	}
	m.recentlyUsed = newList
}
