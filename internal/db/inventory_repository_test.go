package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dverbin/lootcore/internal/model"
)

func testSnapshot(id string) model.InventorySnapshot {
	return model.InventorySnapshot{
		ID:            id,
		Name:          "Backpack",
		IsGridBased:   true,
		Width:         6,
		Height:        4,
		MaxWeight:     100,
		CurrentWeight: 12.5,
		Items: []model.SlotSnapshot{
			{ItemID: "healing_potion", Quantity: 5, SlotIndex: 0},
			{ItemID: "short_sword", Quantity: 1, SlotIndex: 3},
		},
	}
}

func TestInventoryRepository_SaveLoad(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewInventoryRepository(pool)
	ctx := context.Background()

	want := testSnapshot("inv-1")
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx, "inv-1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestInventoryRepository_SaveReplacesItems(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewInventoryRepository(pool)
	ctx := context.Background()

	snap := testSnapshot("inv-2")
	require.NoError(t, repo.Save(ctx, snap))

	snap.Items = []model.SlotSnapshot{{ItemID: "iron_ore", Quantity: 20, SlotIndex: 1}}
	snap.CurrentWeight = 10
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx, "inv-2")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "iron_ore", got.Items[0].ItemID)
	require.Equal(t, 10.0, got.CurrentWeight)
}

func TestInventoryRepository_LoadMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewInventoryRepository(pool)

	_, err := repo.Load(context.Background(), "nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestInventoryRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewInventoryRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSnapshot("inv-3")))
	require.NoError(t, repo.Delete(ctx, "inv-3"))

	_, err := repo.Load(ctx, "inv-3")
	require.True(t, errors.Is(err, pgx.ErrNoRows))

	// deleting again is a no-op
	require.NoError(t, repo.Delete(ctx, "inv-3"))
}

func TestInventoryRepository_ListIDs(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewInventoryRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSnapshot("inv-b")))
	require.NoError(t, repo.Save(ctx, testSnapshot("inv-a")))

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"inv-a", "inv-b"}, ids)
}
