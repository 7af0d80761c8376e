package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/core/internal/adapters/repository"
	"github.com/stockroom/core/internal/domain/inventory"
	"github.com/stockroom/core/internal/infrastructure/logger"
)

func newTestService(t *testing.T) (*InventoryService, *inventory.Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	journal := inventory.NewJournal()
	svc := NewInventoryService(repository.NewFileStore(path), journal, logger.NewNop())
	return svc, journal, path
}

func TestServiceSaveLoadRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "apple", 10)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "apple", 3)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "banana", 5)
	require.NoError(t, err)

	before := svc.Snapshot(ctx)
	require.NoError(t, svc.SaveInventory(ctx))

	// Mutate after saving, then reload: the file contents win wholesale.
	_, err = svc.AddItem(ctx, "cherry", 1)
	require.NoError(t, err)

	require.NoError(t, svc.LoadInventory(ctx))
	assert.Equal(t, before, svc.Snapshot(ctx))
}

func TestServiceLoadMissingFileKeepsState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "apple", 2)
	require.NoError(t, err)

	require.NoError(t, svc.LoadInventory(ctx), "missing file is not a failure")
	assert.Equal(t, map[string]int{"apple": 2}, svc.Snapshot(ctx))
}

func TestServiceLoadCorruptFileKeepsState(t *testing.T) {
	svc, _, path := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "apple", 2)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"apple": 7,`), 0o644))
	err = svc.LoadInventory(ctx)
	assert.ErrorIs(t, err, inventory.ErrParse)
	assert.Equal(t, map[string]int{"apple": 2}, svc.Snapshot(ctx))

	require.NoError(t, os.WriteFile(path, []byte(`{"apple": -7}`), 0o644))
	err = svc.LoadInventory(ctx)
	assert.ErrorIs(t, err, inventory.ErrInvalidInput)
	assert.Equal(t, map[string]int{"apple": 2}, svc.Snapshot(ctx))
}

func TestServiceSaveFailurePropagates(t *testing.T) {
	svc := NewInventoryService(
		repository.NewFileStore(filepath.Join(t.TempDir(), "missing", "inventory.json")),
		nil,
		logger.NewNop(),
	)

	err := svc.SaveInventory(context.Background())
	assert.ErrorIs(t, err, inventory.ErrIO)
}

func TestServiceJournalRecordsMutations(t *testing.T) {
	svc, journal, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "apple", 10)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "apple", 4)
	require.NoError(t, err)

	// Failed mutations leave no record behind.
	_, err = svc.RemoveItem(ctx, "apple", 100)
	require.ErrorIs(t, err, inventory.ErrInsufficientQuantity)

	records := journal.Records()
	require.Len(t, records, 2)
	assert.Equal(t, inventory.OperationAdd, records[0].Operation)
	assert.Equal(t, 10, records[0].Current)
	assert.Equal(t, inventory.OperationRemove, records[1].Operation)
	assert.Equal(t, 6, records[1].Current)
}

func TestServiceQueries(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "apple", 7)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "banana", 2)
	require.NoError(t, err)

	qty, err := svc.GetQuantity(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	low, err := svc.ListLowStock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana"}, low)

	assert.Equal(t, 2, svc.ItemCount(ctx))
	assert.Equal(t, "Current inventory:\n  apple -> 7\n  banana -> 2\n", svc.Report(ctx))
}
