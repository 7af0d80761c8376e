package ports

import (
	"context"

	"github.com/stockroom/core/internal/domain/inventory"
)

// InventoryService defines the application-facing inventory operations.
type InventoryService interface {
	AddItem(ctx context.Context, item string, qty int) (inventory.ChangeRecord, error)
	RemoveItem(ctx context.Context, item string, qty int) (inventory.ChangeRecord, error)
	GetQuantity(ctx context.Context, item string) (int, error)
	ListLowStock(ctx context.Context, threshold int) ([]string, error)
	Snapshot(ctx context.Context) map[string]int
	Report(ctx context.Context) string
	ItemCount(ctx context.Context) int
	SaveInventory(ctx context.Context) error
	LoadInventory(ctx context.Context) error
}

// AdjustStockRequest is the request body for add and remove operations.
type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}
