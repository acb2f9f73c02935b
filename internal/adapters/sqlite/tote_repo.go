package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// ToteRepository implements secondary.ToteRepository with SQLite.
type ToteRepository struct {
	db *sql.DB
}

// NewToteRepository creates a new SQLite tote repository.
func NewToteRepository(db *sql.DB) *ToteRepository {
	return &ToteRepository{db: db}
}

// Create persists a tote with its contents.
// The record must have ID pre-populated by the service layer.
func (r *ToteRepository) Create(ctx context.Context, tote *secondary.ToteRecord) error {
	if tote.ID == "" {
		return fmt.Errorf("tote ID must be pre-populated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO totes (id, deployment_id, label) VALUES (?, ?, ?)",
		tote.ID, tote.DeploymentID, nullString(tote.Label),
	)
	if err != nil {
		return fmt.Errorf("failed to create tote: %w", err)
	}

	for i, itemID := range tote.Contents {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO tote_items (tote_id, item_id, position) VALUES (?, ?, ?)",
			tote.ID, itemID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to add item %s to tote: %w", itemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tote: %w", err)
	}
	return nil
}

// GetByID retrieves a tote with its contents and staged flags.
func (r *ToteRepository) GetByID(ctx context.Context, id string) (*secondary.ToteRecord, error) {
	var label sql.NullString
	record := &secondary.ToteRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, deployment_id, label FROM totes WHERE id = ?", id,
	).Scan(&record.ID, &record.DeploymentID, &label)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, id, "tote %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tote: %w", err)
	}
	record.Label = label.String

	if err := r.loadItems(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByDeployment returns the deployment's totes in creation order.
func (r *ToteRepository) ListByDeployment(ctx context.Context, deploymentID string) ([]*secondary.ToteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, deployment_id, label FROM totes WHERE deployment_id = ? ORDER BY created_at, id",
		deploymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list totes: %w", err)
	}
	defer rows.Close()

	var totes []*secondary.ToteRecord
	for rows.Next() {
		var label sql.NullString
		record := &secondary.ToteRecord{}
		if err := rows.Scan(&record.ID, &record.DeploymentID, &label); err != nil {
			return nil, fmt.Errorf("failed to scan tote: %w", err)
		}
		record.Label = label.String
		totes = append(totes, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, record := range totes {
		if err := r.loadItems(ctx, record); err != nil {
			return nil, err
		}
	}
	return totes, nil
}

// StagedItems returns, for the given items, which are already staged in any
// tote of the deployment.
func (r *ToteRepository) StagedItems(ctx context.Context, deploymentID string, itemIDs []string) (map[string]bool, error) {
	staged := make(map[string]bool)
	if len(itemIDs) == 0 {
		return staged, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs)-1) + "?"
	args := []any{deploymentID}
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT ti.item_id FROM tote_items ti
			JOIN totes t ON t.id = ti.tote_id
			WHERE t.deployment_id = ? AND ti.staged = 1 AND ti.item_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check staged items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("failed to scan staged item: %w", err)
		}
		staged[itemID] = true
	}
	return staged, rows.Err()
}

// MarkStaged marks the tote's items staged in one transaction; either every
// item is marked or none is.
func (r *ToteRepository) MarkStaged(ctx context.Context, toteID string, itemIDs []string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, itemID := range itemIDs {
		result, err := tx.ExecContext(ctx,
			"UPDATE tote_items SET staged = 1, staged_at = ? WHERE tote_id = ? AND item_id = ?",
			at, toteID, itemID,
		)
		if err != nil {
			return fmt.Errorf("failed to stage item %s: %w", itemID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check staging result: %w", err)
		}
		if affected == 0 {
			return fault.New(fault.KindNotFound, itemID, "item %s is not in tote %s", itemID, toteID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit staging: %w", err)
	}
	return nil
}

// NextID returns the next tote ID.
func (r *ToteRepository) NextID(ctx context.Context, deploymentID string) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM totes",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next tote ID: %w", err)
	}
	return fmt.Sprintf("TOTE-%03d", maxID+1), nil
}

// loadItems fills the tote's contents and staged flags.
func (r *ToteRepository) loadItems(ctx context.Context, record *secondary.ToteRecord) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT item_id, staged FROM tote_items WHERE tote_id = ? ORDER BY position",
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to list tote items: %w", err)
	}
	defer rows.Close()

	record.Contents = nil
	record.StagedItems = make(map[string]bool)
	for rows.Next() {
		var itemID string
		var staged int
		if err := rows.Scan(&itemID, &staged); err != nil {
			return fmt.Errorf("failed to scan tote item: %w", err)
		}
		record.Contents = append(record.Contents, itemID)
		if staged != 0 {
			record.StagedItems[itemID] = true
		}
	}
	return rows.Err()
}
