package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
)

// CatalogRepository stores the catalog in PostgreSQL
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const (
	upsertItemQuery = `
		INSERT INTO catalog_items
			(id, position, name, category, unit, wholesale_price, regional_prices, annotations, image_file_id, import_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position,
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			wholesale_price = EXCLUDED.wholesale_price,
			regional_prices = EXCLUDED.regional_prices,
			annotations = EXCLUDED.annotations,
			image_file_id = COALESCE(EXCLUDED.image_file_id, catalog_items.image_file_id),
			import_id = EXCLUDED.import_id,
			updated_at = EXCLUDED.updated_at`

	deleteStaleItemsQuery = `DELETE FROM catalog_items WHERE import_id <> $1`

	insertSnapshotQuery = `
		INSERT INTO catalog_snapshots (id, imported_at, source, item_count, items)
		VALUES ($1, $2, $3, $4, $5)`

	selectItemColumns = `
		SELECT id, name, category, unit, wholesale_price, regional_prices, annotations,
			COALESCE(image_file_id, ''), updated_at
		FROM catalog_items`
)

// ReplaceAll upserts the snapshot items, removes items missing from it and
// appends the snapshot to the history, all in one transaction.
// Photos already linked to an item survive re-imports.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	if snapshot == nil || snapshot.ID == "" {
		return fmt.Errorf("snapshot id is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, item := range snapshot.Items {
		prices, err := json.Marshal(item.RegionalPrice)
		if err != nil {
			return fmt.Errorf("failed to encode prices for %s: %w", item.ID, err)
		}
		annotations, err := json.Marshal(item.Annotations)
		if err != nil {
			return fmt.Errorf("failed to encode annotations for %s: %w", item.ID, err)
		}
		imageFileID := sql.NullString{String: item.ImageFileID, Valid: item.ImageFileID != ""}

		if _, err := tx.ExecContext(ctx, upsertItemQuery,
			item.ID, i, item.Name, item.Category, string(item.Unit), item.WholesalePrice,
			string(prices), string(annotations), imageFileID, snapshot.ID, snapshot.ImportedAt,
		); err != nil {
			logger.Log.Error("❌ Error upserting catalog item", zap.String("id", item.ID), zap.Error(err))
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}

	res, err := tx.ExecContext(ctx, deleteStaleItemsQuery, snapshot.ID)
	if err != nil {
		return fmt.Errorf("failed to delete stale items: %w", err)
	}
	removed, _ := res.RowsAffected()

	items, err := json.Marshal(snapshot.Items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertSnapshotQuery,
		snapshot.ID, snapshot.ImportedAt, snapshot.Source, len(snapshot.Items), string(items),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog import: %w", err)
	}

	logger.Log.Info("✓ Catalog replaced",
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("items", len(snapshot.Items)),
		zap.Int64("removed", removed),
	)
	return nil
}

// List returns every catalog item in price-list order
func (r *CatalogRepository) List(ctx context.Context) ([]models.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, selectItemColumns+` ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListByRegion returns the items that have a price in region
func (r *CatalogRepository) ListByRegion(ctx context.Context, region string) ([]models.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, selectItemColumns+` WHERE regional_prices ? $1 ORDER BY position ASC`, region)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog for region %s: %w", region, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetByID returns one item or ErrNotFound
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx, selectItemColumns+` WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item %s: %w", id, err)
	}
	return item, nil
}

// SetImage links a Drive photo to a catalog item
func (r *CatalogRepository) SetImage(ctx context.Context, id string, imageFileID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE catalog_items SET image_file_id = $2 WHERE id = $1`, id, imageFileID)
	if err != nil {
		return fmt.Errorf("failed to set image for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set image for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("catalog item %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListSnapshots returns the most recent import snapshots without their items
func (r *CatalogRepository) ListSnapshots(ctx context.Context, limit int) ([]models.CatalogSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, imported_at, source, item_count
		FROM catalog_snapshots
		ORDER BY imported_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.CatalogSnapshot
	for rows.Next() {
		var s models.CatalogSnapshot
		if err := rows.Scan(&s.ID, &s.ImportedAt, &s.Source, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.CatalogItem, error) {
	var (
		item        models.CatalogItem
		unit        string
		prices      []byte
		annotations []byte
	)
	if err := s.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&unit,
		&item.WholesalePrice,
		&prices,
		&annotations,
		&item.ImageFileID,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Unit = models.Unit(unit)

	item.RegionalPrice = models.RegionalPrices{}
	if len(prices) > 0 {
		if err := json.Unmarshal(prices, &item.RegionalPrice); err != nil {
			return nil, fmt.Errorf("failed to decode prices for %s: %w", item.ID, err)
		}
	}
	if len(annotations) > 0 {
		if err := json.Unmarshal(annotations, &item.Annotations); err != nil {
			return nil, fmt.Errorf("failed to decode annotations for %s: %w", item.ID, err)
		}
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]models.CatalogItem, error) {
	items := []models.CatalogItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			logger.Log.Error("❌ Error scanning catalog item", zap.Error(err))
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog items: %w", err)
	}
	return items, nil
}
