package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually driven clock for deterministic ticks
// Now is origin plus the sum of all Advance calls since the last SetTime
type MockTimeProvider struct {
	mu     sync.Mutex
	origin time.Time
	offset time.Duration
}

func NewMockTimeProvider(origin time.Time) *MockTimeProvider {
	return &MockTimeProvider{origin: origin}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.origin.Add(m.offset)
}

// SetTime jumps to t and makes it the new origin
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.origin, m.offset = t, 0
	m.mu.Unlock()
}

// Advance moves the clock by d; negative d moves it back
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.offset += d
	m.mu.Unlock()
}
