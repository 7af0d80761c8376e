package ports

import "context"

// StockStore defines the interface for inventory persistence.
//
// Load reports a missing backing file by returning an error satisfying
// errors.Is(err, fs.ErrNotExist); callers treat that as "start empty", not as
// a failure. All other failures carry one of the inventory error kinds:
// ErrParse for broken JSON syntax, ErrInvalidInput for structural violations,
// ErrIO for underlying read/write failures.
type StockStore interface {
	Save(ctx context.Context, state map[string]int) error
	Load(ctx context.Context) (map[string]int, error)
}
