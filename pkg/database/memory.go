package database

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a process-local DocumentStore. A positive quota caps the total stored bytes.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	quota int
}

func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte), quota: quota}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return append([]byte(nil), body...), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := 0
		for k, v := range s.docs {
			if k != key {
				used += len(v)
			}
		}
		if used+len(body) > s.quota {
			return fmt.Errorf("put document %s: %w", key, ErrQuotaExceeded)
		}
	}

	s.docs[key] = append([]byte(nil), body...)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
