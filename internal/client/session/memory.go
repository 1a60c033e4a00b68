package session

import (
	"context"
	"sync"
)

// MemorySlot keeps the identity in process memory.
type MemorySlot struct {
	mu       sync.RWMutex
	identity string
	set      bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Set(_ context.Context, identity string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity, s.set = identity, true
	return nil
}

func (s *MemorySlot) Get(context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.set, nil
}

func (s *MemorySlot) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity, s.set = "", false
	return nil
}
