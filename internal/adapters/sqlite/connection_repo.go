package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// ConnectionRepository implements secondary.ConnectionRepository with SQLite.
type ConnectionRepository struct {
	db *sql.DB
}

// NewConnectionRepository creates a new SQLite connection repository.
func NewConnectionRepository(db *sql.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

const connectionColumns = "id, deployment_id, session_id, zone_code, from_item_id, from_port, to_item_id, to_port, notes, connected_at, removed, removal_reason, removed_at"

// Create persists a new connection with its illuminates list.
// The record must have ID pre-populated by the service layer.
func (r *ConnectionRepository) Create(ctx context.Context, conn *secondary.ConnectionRecord) error {
	if conn.ID == "" {
		return fmt.Errorf("connection ID must be pre-populated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO connections (id, deployment_id, session_id, zone_code, from_item_id, from_port, to_item_id, to_port, notes, connected_at, removed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		conn.ID, conn.DeploymentID, conn.SessionID, conn.ZoneCode,
		conn.FromItemID, conn.FromPort, conn.ToItemID, conn.ToPort,
		nullString(conn.Notes), conn.ConnectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}

	for i, itemID := range conn.Illuminates {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO connection_illuminates (connection_id, item_id, position) VALUES (?, ?, ?)",
			conn.ID, itemID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to record illuminated item %s: %w", itemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit connection: %w", err)
	}
	return nil
}

// GetByID retrieves a connection by its ID.
func (r *ConnectionRepository) GetByID(ctx context.Context, id string) (*secondary.ConnectionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+connectionColumns+" FROM connections WHERE id = ?", id,
	)
	record, err := scanConnection(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, id, "connection %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	if err := r.loadLists(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListActiveBySession returns the session's non-removed connections in
// creation order.
func (r *ConnectionRepository) ListActiveBySession(ctx context.Context, sessionID string) ([]*secondary.ConnectionRecord, error) {
	return r.listWhere(ctx, "session_id = ? AND removed = 0", sessionID)
}

// ListRemovedBySession returns the session's removed connections in creation
// order.
func (r *ConnectionRepository) ListRemovedBySession(ctx context.Context, sessionID string) ([]*secondary.ConnectionRecord, error) {
	return r.listWhere(ctx, "session_id = ? AND removed = 1", sessionID)
}

// ListActiveByDeployment returns every non-removed connection of the
// deployment.
func (r *ConnectionRepository) ListActiveByDeployment(ctx context.Context, deploymentID string) ([]*secondary.ConnectionRecord, error) {
	return r.listWhere(ctx, "deployment_id = ? AND removed = 0", deploymentID)
}

// MarkRemoved soft-deletes the connection with the supplied reason.
func (r *ConnectionRepository) MarkRemoved(ctx context.Context, id, reason string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE connections SET removed = 1, removal_reason = ?, removed_at = ? WHERE id = ?",
		nullString(reason), at, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark connection removed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal result: %w", err)
	}
	if affected == 0 {
		return fault.New(fault.KindNotFound, id, "connection %s not found", id)
	}
	return nil
}

// ReplacePhotos stores the full merged photo id list for the connection.
func (r *ConnectionRepository) ReplacePhotos(ctx context.Context, id string, photoIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM connection_photos WHERE connection_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear photos: %w", err)
	}
	for i, photoID := range photoIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO connection_photos (connection_id, photo_id, position) VALUES (?, ?, ?)",
			id, photoID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to store photo %s: %w", photoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit photos: %w", err)
	}
	return nil
}

// NextID returns the next connection ID.
func (r *ConnectionRepository) NextID(ctx context.Context, deploymentID string) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM connections",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next connection ID: %w", err)
	}
	return fmt.Sprintf("CONN-%03d", maxID+1), nil
}

func (r *ConnectionRepository) listWhere(ctx context.Context, where string, arg any) ([]*secondary.ConnectionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+connectionColumns+" FROM connections WHERE "+where+" ORDER BY connected_at, id",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var connections []*secondary.ConnectionRecord
	for rows.Next() {
		record, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, record := range connections {
		if err := r.loadLists(ctx, record); err != nil {
			return nil, err
		}
	}
	return connections, nil
}

// loadLists fills the connection's illuminates and photo id lists.
func (r *ConnectionRepository) loadLists(ctx context.Context, record *secondary.ConnectionRecord) error {
	illuminates, err := r.queryStrings(ctx,
		"SELECT item_id FROM connection_illuminates WHERE connection_id = ? ORDER BY position",
		record.ID)
	if err != nil {
		return fmt.Errorf("failed to list illuminated items: %w", err)
	}
	record.Illuminates = illuminates

	photos, err := r.queryStrings(ctx,
		"SELECT photo_id FROM connection_photos WHERE connection_id = ? ORDER BY position",
		record.ID)
	if err != nil {
		return fmt.Errorf("failed to list photos: %w", err)
	}
	record.PhotoIDs = photos
	return nil
}

func (r *ConnectionRepository) queryStrings(ctx context.Context, query string, arg any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanConnection(s scanner) (*secondary.ConnectionRecord, error) {
	var (
		notes, removalReason sql.NullString
		removed              int
		removedAt            sql.NullTime
	)
	record := &secondary.ConnectionRecord{}
	err := s.Scan(&record.ID, &record.DeploymentID, &record.SessionID, &record.ZoneCode,
		&record.FromItemID, &record.FromPort, &record.ToItemID, &record.ToPort,
		&notes, &record.ConnectedAt, &removed, &removalReason, &removedAt)
	if err != nil {
		return nil, err
	}
	record.Notes = notes.String
	record.Removed = removed != 0
	record.RemovalReason = removalReason.String
	if removedAt.Valid {
		record.RemovedAt = removedAt.Time
	}
	return record, nil
}
