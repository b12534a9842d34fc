package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RevocationStore is the in-process token denylist. Entries are dropped once the token
// they refer to has expired.
type RevocationStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]time.Time
	nowFn   func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		entries: make(map[uuid.UUID]time.Time),
		nowFn:   time.Now,
	}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID uuid.UUID, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = expiresAt
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !s.nowFn().Before(expiresAt) {
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// Sweep removes expired entries and returns how many were dropped.
func (s *RevocationStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	removed := 0
	for id, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *RevocationStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
