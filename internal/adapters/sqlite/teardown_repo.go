package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TeardownRepository implements secondary.TeardownRepository with SQLite.
type TeardownRepository struct {
	db *sql.DB
}

// NewTeardownRepository creates a new SQLite teardown repository.
func NewTeardownRepository(db *sql.DB) *TeardownRepository {
	return &TeardownRepository{db: db}
}

// MarkTornDown records an item as torn down in a zone. Duplicates are
// ignored, keeping the first torn_down_at.
func (r *TeardownRepository) MarkTornDown(ctx context.Context, deploymentID, zoneCode, itemID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO teardown_items (deployment_id, zone_code, item_id, torn_down_at) VALUES (?, ?, ?, ?)",
		deploymentID, zoneCode, itemID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to record teardown: %w", err)
	}
	return nil
}

// TornDownItems returns the set of torn-down items in a zone.
func (r *TeardownRepository) TornDownItems(ctx context.Context, deploymentID, zoneCode string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT item_id FROM teardown_items WHERE deployment_id = ? AND zone_code = ?",
		deploymentID, zoneCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list torn-down items: %w", err)
	}
	defer rows.Close()

	items := make(map[string]bool)
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("failed to scan torn-down item: %w", err)
		}
		items[itemID] = true
	}
	return items, rows.Err()
}
