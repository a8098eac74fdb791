package keychain

import (
	"sync"

	"go.abhg.dev/pwstore/internal/attr"
)

// Memory is an in-memory credential store for testing.
// Its zero value is ready for use.
type Memory struct {
	mu sync.Mutex
	t  table
}

var _ Backend = (*Memory)(nil)

// FindOne returns the payload of the first matching record.
func (m *Memory) FindOne(query attr.Set) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.t.findOne(query)
}

// Insert adds a record to the store.
func (m *Memory) Insert(item attr.Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.t.insert(item)
}

// Update changes all matching records.
func (m *Memory) Update(query, changes attr.Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.t.update(query, changes)
}

// Delete removes all matching records.
func (m *Memory) Delete(query attr.Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.t.delete(query)
}

// Len reports the number of records in the store.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.t.Records)
}
