package coverage

import "context"

// Repository defines the storage interface for coverage weeks. The
// editor core never calls it directly; the host subscribes to the
// store's change notification and persists the payload.
type Repository interface {
	// LoadWeek returns the persisted coverage, one entry per stored day.
	// Days without slots may be absent.
	LoadWeek(ctx context.Context) ([]DailyCoverage, error)

	// ReplaceDay atomically replaces all slots of one day.
	ReplaceDay(ctx context.Context, day DailyCoverage) error

	// ReplaceWeek atomically replaces the whole seven-day set.
	ReplaceWeek(ctx context.Context, days []DailyCoverage) error

	// Close releases any resources held by the repository.
	Close() error
}
