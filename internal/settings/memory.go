package settings

import (
	"context"
	"sync"
)

// Memory is an in-memory Store for tests and keyless local runs.
type Memory struct {
	mu     sync.RWMutex
	family string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Family(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.family, nil
}

func (m *Memory) SetFamily(ctx context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.family = value
	return nil
}
