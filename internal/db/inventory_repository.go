package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverbin/lootcore/internal/model"
)

// InventoryRepository persists inventory snapshots.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository.
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Save upserts the inventory row and replaces its item rows in a
// single transaction.
func (r *InventoryRepository) Save(ctx context.Context, snap model.InventorySnapshot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO inventories (id, name, is_grid_based, width, height, max_weight, current_weight, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			is_grid_based = EXCLUDED.is_grid_based,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			max_weight = EXCLUDED.max_weight,
			current_weight = EXCLUDED.current_weight,
			updated_at = EXCLUDED.updated_at`,
		snap.ID, snap.Name, snap.IsGridBased, snap.Width, snap.Height,
		snap.MaxWeight, snap.CurrentWeight, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upserting inventory %q: %w", snap.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inventory_items WHERE inventory_id = $1`, snap.ID); err != nil {
		return fmt.Errorf("clearing items of inventory %q: %w", snap.ID, err)
	}

	batch := &pgx.Batch{}
	for _, it := range snap.Items {
		batch.Queue(`
			INSERT INTO inventory_items (inventory_id, slot_index, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			snap.ID, it.SlotIndex, it.ItemID, it.Quantity,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting items of inventory %q: %w", snap.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save of inventory %q: %w", snap.ID, err)
	}
	return nil
}

// Load reads a snapshot by inventory id.
// Returns pgx.ErrNoRows wrapped when the inventory does not exist.
func (r *InventoryRepository) Load(ctx context.Context, id string) (model.InventorySnapshot, error) {
	var snap model.InventorySnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_grid_based, width, height, max_weight, current_weight
		FROM inventories WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.Name, &snap.IsGridBased, &snap.Width, &snap.Height,
		&snap.MaxWeight, &snap.CurrentWeight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, fmt.Errorf("inventory %q: %w", id, pgx.ErrNoRows)
		}
		return snap, fmt.Errorf("querying inventory %q: %w", id, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT slot_index, item_id, quantity
		FROM inventory_items
		WHERE inventory_id = $1
		ORDER BY slot_index`, id,
	)
	if err != nil {
		return snap, fmt.Errorf("querying items of inventory %q: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.SlotSnapshot
		if err := rows.Scan(&it.SlotIndex, &it.ItemID, &it.Quantity); err != nil {
			return snap, fmt.Errorf("scanning item row: %w", err)
		}
		snap.Items = append(snap.Items, it)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterating item rows: %w", err)
	}
	return snap, nil
}

// Delete removes an inventory and its items. Deleting an unknown id
// is not an error.
func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting inventory %q: %w", id, err)
	}
	return nil
}

// ListIDs returns the ids of every stored inventory.
func (r *InventoryRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM inventories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing inventories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning inventory id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory ids: %w", err)
	}
	return ids, nil
}
