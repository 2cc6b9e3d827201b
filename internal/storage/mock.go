package storage

import (
	"sync"
	"time"
)

// Mock is an in-memory Store with failure injection for tests.
type Mock struct {
	mu       sync.Mutex
	values   map[string]string
	updated  map[string]time.Time
	setErr   error
	getErr   error
	setCalls int
	closed   bool
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string), updated: make(map[string]time.Time)}
}

// Get returns the value of key or the injected read error.
func (m *Mock) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key unless a write error is injected.
func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	m.updated[key] = time.Now()
	return nil
}

// Remove deletes key unless a write error is injected.
func (m *Mock) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	delete(m.values, key)
	delete(m.updated, key)
	return nil
}

// UpdatedAt returns when key was last written through Set.
func (m *Mock) UpdatedAt(key string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.updated[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return ts, nil
}

// Close marks the store closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetValue stores a raw value without counting it as a Set call.
func (m *Mock) SetValue(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the raw stored value.
func (m *Mock) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// SetSetError makes every later Set and Remove fail with err.
func (m *Mock) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// SetGetError makes every later Get fail with err.
func (m *Mock) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetCalls returns the number of Set calls, failed ones included.
func (m *Mock) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

// IsClosed reports whether Close was called.
func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Store and Timestamper at compile time.
var (
	_ Store       = (*Mock)(nil)
	_ Timestamper = (*Mock)(nil)
)
