package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// repeatSpawner always spawns the same kind.
type repeatSpawner Kind

func (k repeatSpawner) Next() (Spawn, error) { return Spawn{Kind: Kind(k)}, nil }

// NewTestMatrix creates a 10x10 matrix that only spawns tetrominos of kind k.
func NewTestMatrix(k Kind) *Matrix {
	m, err := New(DefaultRows, DefaultCols, repeatSpawner(k))
	if err != nil {
		panic(err)
	}
	if err := m.Reset(); err != nil {
		panic(err)
	}
	return m
}

// NewTestGame creates a game around a test matrix of kind k and returns it with its manual ticker.
func NewTestGame(k Kind) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewConfigurableGame(NewTestMatrix(k), ticker, DefaultTick, nil), ticker
}
