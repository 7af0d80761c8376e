package services

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/stockroom/core/internal/domain/inventory"
	"github.com/stockroom/core/internal/infrastructure/logger"
	"github.com/stockroom/core/internal/ports"
)

// InventoryService exposes the ledger operations behind a single exclusive
// lock. The ledger itself performs no synchronization, so every caller path
// (HTTP handlers, CLI commands) goes through this service.
type InventoryService struct {
	mu      sync.Mutex
	ledger  *inventory.Ledger
	store   ports.StockStore
	journal *inventory.Journal
	logger  *logger.Logger
}

// NewInventoryService creates a new inventory service. journal may be nil
// when the caller does not want change records collected.
func NewInventoryService(store ports.StockStore, journal *inventory.Journal, logger *logger.Logger) *InventoryService {
	return &InventoryService{
		ledger:  inventory.New(),
		store:   store,
		journal: journal,
		logger:  logger,
	}
}

// AddItem increases the quantity of item by qty.
func (s *InventoryService) AddItem(ctx context.Context, item string, qty int) (inventory.ChangeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Add(item, qty)
	if err != nil {
		return inventory.ChangeRecord{}, err
	}

	if s.journal != nil {
		s.journal.Append(rec)
	}
	s.logger.LogStockChange(string(rec.Operation), rec.Item, rec.Previous, rec.Current)

	return rec, nil
}

// RemoveItem decreases the quantity of item by qty.
func (s *InventoryService) RemoveItem(ctx context.Context, item string, qty int) (inventory.ChangeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Remove(item, qty)
	if err != nil {
		return inventory.ChangeRecord{}, err
	}

	if s.journal != nil {
		s.journal.Append(rec)
	}
	s.logger.LogStockChange(string(rec.Operation), rec.Item, rec.Previous, rec.Current)

	return rec, nil
}

// GetQuantity returns the stored quantity of item, or 0 when absent.
func (s *InventoryService) GetQuantity(ctx context.Context, item string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Quantity(item)
}

// ListLowStock returns the items whose quantity is strictly below threshold.
func (s *InventoryService) ListLowStock(ctx context.Context, threshold int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.LowStock(threshold)
}

// Snapshot returns an independent copy of the current holdings.
func (s *InventoryService) Snapshot(ctx context.Context) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Snapshot()
}

// Report returns the formatted holdings report.
func (s *InventoryService) Report(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Report()
}

// ItemCount returns the number of tracked items.
func (s *InventoryService) ItemCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Len()
}

// SaveInventory persists the current holdings through the store. A store
// failure is logged and returned; it is never swallowed.
func (s *InventoryService) SaveInventory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		s.logger.LogStoreFailure("save", err)
		return err
	}

	s.logger.Infow("Inventory saved", "items", s.ledger.Len())
	return nil
}

// LoadInventory replaces the current holdings with the store contents. A
// missing backing file leaves the state unchanged and is not an error; any
// other failure is logged and returned with the state untouched.
func (s *InventoryService) LoadInventory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnw("Inventory file not found, keeping current state", "error", err.Error())
			return nil
		}
		s.logger.LogStoreFailure("load", err)
		return err
	}

	s.ledger.Replace(state)
	s.logger.Infow("Inventory loaded", "items", s.ledger.Len())
	return nil
}

var _ ports.InventoryService = (*InventoryService)(nil)
