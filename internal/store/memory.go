package store

import (
	"context"
	"sync"

	"miraiz/internal/model"
)

// MemoryStore keeps interactions for the process lifetime only.
type MemoryStore struct {
	mu   sync.RWMutex
	list []*model.Interaction
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends an interaction.
func (s *MemoryStore) Add(ctx context.Context, interaction *model.Interaction) error {
	s.mu.Lock()
	s.list = append(s.list, interaction)
	s.mu.Unlock()
	return nil
}

// List returns stored interactions, filtered by user when userID is
// non-empty.
func (s *MemoryStore) List(ctx context.Context, userID string) ([]*model.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Interaction, 0, len(s.list))
	for _, i := range s.list {
		if userID == "" || i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

// Metrics counts interactions grouped by status.
func (s *MemoryStore) Metrics(ctx context.Context) (*model.InteractionMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, i := range s.list {
		status := i.Status
		if status == "" {
			status = model.InteractionPending
		}
		counts[status]++
	}
	return &model.InteractionMetrics{Counts: counts, Total: len(s.list)}, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
