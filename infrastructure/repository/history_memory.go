package repository

import (
	"context"
	"sync"

	"glasslabel-go/domain/label"
	"glasslabel-go/infrastructure/logging"
)

// MemoryHistoryRepository keeps history entries in process memory.
type MemoryHistoryRepository struct {
	entries []label.HistoryEntry
	mu      sync.RWMutex
}

// NewMemoryHistoryRepository creates an empty in-memory history repository.
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{}
}

// Append stores a copy of entry.
func (r *MemoryHistoryRepository) Append(ctx context.Context, entry *label.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.entries = append(r.entries, *entry)
	n := len(r.entries)
	r.mu.Unlock()

	logging.From(ctx).Debug("History entry stored", "entries", n)
	return nil
}

// FindByRun returns copies of the entries of a run in insertion order.
func (r *MemoryHistoryRepository) FindByRun(ctx context.Context, runID string) ([]*label.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*label.HistoryEntry
	for i := range r.entries {
		if r.entries[i].RunID == runID {
			e := r.entries[i]
			result = append(result, &e)
		}
	}
	return result, nil
}

// CountByValue counts the entries of a run carrying v.
func (r *MemoryHistoryRepository) CountByValue(ctx context.Context, runID string, v label.Value) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.entries {
		if e.RunID == runID && e.Value == v {
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored entries across all runs.
func (r *MemoryHistoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
