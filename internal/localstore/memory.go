package localstore

import (
	"context"
	"sync"
)

// MemoryTier is the process-lifetime tier (tier A).
type MemoryTier struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{data: make(map[string][]byte)}
}

func (t *MemoryTier) Get(_ context.Context, key string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	value, ok := t.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (t *MemoryTier) Set(_ context.Context, key string, value []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[key] = append([]byte(nil), value...)
	return nil
}

func (t *MemoryTier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.data, key)
	return nil
}

func (t *MemoryTier) Clear(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = make(map[string][]byte)
	return nil
}
