package inventory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold is the policy default for low-stock reporting.
const DefaultLowStockThreshold = 5

// Operation identifies the kind of a ledger mutation.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// ChangeRecord describes one successful mutation of the ledger.
type ChangeRecord struct {
	ID        uuid.UUID `json:"id"`
	Time      time.Time `json:"time"`
	Operation Operation `json:"operation"`
	Item      string    `json:"item"`
	Previous  int       `json:"previous"`
	Current   int       `json:"current"`
}

// Ledger is an in-memory mapping from item name to a non-negative quantity.
//
// Invariants: every key is non-empty, every quantity is >= 0, and a key whose
// quantity reaches zero through Remove is deleted. The ledger performs no
// internal synchronization; callers exposing it concurrently must serialize
// access with their own lock.
type Ledger struct {
	items map[string]int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{items: make(map[string]int)}
}

// NewFromSeed creates a ledger pre-populated from seed. Each entry is applied
// through the validated add path, so an invalid entry fails the whole seed.
func NewFromSeed(seed map[string]int) (*Ledger, error) {
	l := New()
	for item, qty := range seed {
		if _, err := l.Add(item, qty); err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", item, err)
		}
	}
	return l, nil
}

// Add increases the quantity of item by qty. A qty of zero is a legal no-op
// increment and still produces a change record.
func (l *Ledger) Add(item string, qty int) (ChangeRecord, error) {
	if err := validateItemName(item); err != nil {
		return ChangeRecord{}, err
	}
	if qty < 0 {
		return ChangeRecord{}, invalidInput("quantity must be non-negative, got %d", qty)
	}

	previous := l.items[item]
	l.items[item] = previous + qty

	return ChangeRecord{
		ID:        uuid.New(),
		Time:      time.Now(),
		Operation: OperationAdd,
		Item:      item,
		Previous:  previous,
		Current:   previous + qty,
	}, nil
}

// Remove decreases the quantity of item by qty. When the quantity reaches
// exactly zero the key is deleted so zero-quantity entries never persist.
func (l *Ledger) Remove(item string, qty int) (ChangeRecord, error) {
	if err := validateItemName(item); err != nil {
		return ChangeRecord{}, err
	}
	if qty <= 0 {
		return ChangeRecord{}, invalidInput("quantity must be positive, got %d", qty)
	}

	held, ok := l.items[item]
	if !ok {
		return ChangeRecord{}, fmt.Errorf("%w: %q", ErrItemNotFound, item)
	}
	if held < qty {
		return ChangeRecord{}, &InsufficientQuantityError{Item: item, Held: held, Requested: qty}
	}

	remaining := held - qty
	if remaining == 0 {
		delete(l.items, item)
	} else {
		l.items[item] = remaining
	}

	return ChangeRecord{
		ID:        uuid.New(),
		Time:      time.Now(),
		Operation: OperationRemove,
		Item:      item,
		Previous:  held,
		Current:   remaining,
	}, nil
}

// Quantity returns the stored quantity of item, or 0 when absent.
func (l *Ledger) Quantity(item string) (int, error) {
	if err := validateItemName(item); err != nil {
		return 0, err
	}
	return l.items[item], nil
}

// LowStock returns the names of items whose quantity is strictly below
// threshold, sorted ascending for reproducible output.
func (l *Ledger) LowStock(threshold int) ([]string, error) {
	if threshold < 0 {
		return nil, invalidInput("threshold must be non-negative, got %d", threshold)
	}

	var low []string
	for item, qty := range l.items {
		if qty < threshold {
			low = append(low, item)
		}
	}
	sort.Strings(low)
	return low, nil
}

// Snapshot returns an independent copy of the current mapping.
func (l *Ledger) Snapshot() map[string]int {
	snapshot := make(map[string]int, len(l.items))
	for item, qty := range l.items {
		snapshot[item] = qty
	}
	return snapshot
}

// Replace swaps the entire mapping for state. The ledger takes ownership of
// its own copy; state must already be validated by the caller. Zero values
// arriving from a validated load are kept as-is until the next mutation.
func (l *Ledger) Replace(state map[string]int) {
	items := make(map[string]int, len(state))
	for item, qty := range state {
		items[item] = qty
	}
	l.items = items
}

// Len returns the number of tracked items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Report formats the current holdings as human-readable text, one line per
// item sorted by name.
func (l *Ledger) Report() string {
	var b strings.Builder
	b.WriteString("Current inventory:\n")

	if len(l.items) == 0 {
		b.WriteString("  (empty)\n")
		return b.String()
	}

	names := make([]string, 0, len(l.items))
	for item := range l.items {
		names = append(names, item)
	}
	sort.Strings(names)

	for _, item := range names {
		fmt.Fprintf(&b, "  %s -> %d\n", item, l.items[item])
	}
	return b.String()
}

func validateItemName(item string) error {
	if strings.TrimSpace(item) == "" {
		return invalidInput("item name must be non-empty")
	}
	return nil
}
