package session

import (
	"context"
	"sync"

	"github.com/sportsday/sportsday/internal/dependencies/clock"
)

// MemoryStore is a process-held implementation of the session store
type MemoryStore struct {
	clock clock.Clock

	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clk,
		records: make(map[string]*Record),
	}
}

// Ensure MemoryStore implements the interface
var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *rec
	s.records[rec.Token] = &stored
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if s.clock.Now().After(rec.ExpiresAt) {
		s.mu.Lock()
		delete(s.records, token)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	copied := *rec
	return &copied, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.records, token)
	s.mu.Unlock()
	return nil
}

// CleanExpired removes expired records (call periodically)
func (s *MemoryStore) CleanExpired() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, rec := range s.records {
		if now.After(rec.ExpiresAt) {
			delete(s.records, token)
		}
	}
}
