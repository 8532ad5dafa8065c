package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MockStorage keeps the values in memory as json.
type MockStorage struct {
	lock     sync.RWMutex
	Elements map[Key][]byte
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key][]byte)}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal '%+v': %w", k, err)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Elements[Key{Name: k.Path()}] = b
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	m.lock.RLock()
	defer m.lock.RUnlock()
	b, ok := m.Elements[Key{Name: k.Path()}]
	if !ok {
		return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not unmarshal '%v': %v: %w", k, err, CouldNotLoadErr)
	}
	return nil
}

func (m *MockStorage) List() ([]Key, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	keys := make([]Key, 0, len(m.Elements))
	for k := range m.Elements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys, nil
}
