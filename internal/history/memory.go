package history

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
}

// NewMemoryStore returns an empty store keeping at most limit entries.
// A non-positive limit means DefaultLimit.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit}
}

func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, min(len(s.entries)+1, s.limit))
	entries = append(entries, e)
	entries = append(entries, s.entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.entries = entries

	recordAppend(e.Kind, len(s.entries))
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries...), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	recordClear()
	return nil
}
