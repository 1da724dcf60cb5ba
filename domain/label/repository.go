package label

import "context"

// HistoryRepository defines persistence for applied label history.
type HistoryRepository interface {
	// Append stores one history entry.
	Append(ctx context.Context, entry *HistoryEntry) error

	// FindByRun returns all entries of a run in the order they were labeled.
	FindByRun(ctx context.Context, runID string) ([]*HistoryEntry, error)

	// CountByValue returns how many entries of a run carry the given value.
	CountByValue(ctx context.Context, runID string, v Value) (int, error)
}

// RunSummary totals the history recorded for one run.
type RunSummary struct {
	RunID    string
	Labeled  int
	Positive int
	Negative int
}

// SummarizeRun reads the recorded history of runID back from repo.
func SummarizeRun(ctx context.Context, repo HistoryRepository, runID string) (*RunSummary, error) {
	entries, err := repo.FindByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	positive, err := repo.CountByValue(ctx, runID, Positive)
	if err != nil {
		return nil, err
	}
	negative, err := repo.CountByValue(ctx, runID, Negative)
	if err != nil {
		return nil, err
	}
	return &RunSummary{
		RunID:    runID,
		Labeled:  len(entries),
		Positive: positive,
		Negative: negative,
	}, nil
}
