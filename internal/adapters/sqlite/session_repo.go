package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, deployment_id, zone_code, start_time, end_time, closed, duration_seconds, notes"

// Create persists a new open session.
// The record must have ID pre-populated by the service layer.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	if session.ID == "" {
		return fmt.Errorf("session ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id, deployment_id, zone_code, start_time, closed) VALUES (?, ?, ?, ?, 0)",
		session.ID, session.DeploymentID, session.ZoneCode, session.StartTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id,
	)
	record, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, id, "session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return record, nil
}

// GetOpenByZone returns the zone's open session, or nil if the zone is closed.
func (r *SessionRepository) GetOpenByZone(ctx context.Context, deploymentID, zoneCode string) (*secondary.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE deployment_id = ? AND zone_code = ? AND closed = 0",
		deploymentID, zoneCode,
	)
	record, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return record, nil
}

// ListOpenZones returns the codes of zones holding an open session.
func (r *SessionRepository) ListOpenZones(ctx context.Context, deploymentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT zone_code FROM sessions WHERE deployment_id = ? AND closed = 0 ORDER BY zone_code",
		deploymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open zones: %w", err)
	}
	defer rows.Close()

	var zones []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan zone code: %w", err)
		}
		zones = append(zones, code)
	}
	return zones, rows.Err()
}

// ListByZone returns the zone's sessions, oldest first.
func (r *SessionRepository) ListByZone(ctx context.Context, deploymentID, zoneCode string) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE deployment_id = ? AND zone_code = ? ORDER BY start_time",
		deploymentID, zoneCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, record)
	}
	return sessions, rows.Err()
}

// Close stores end time, duration, and notes for a session.
func (r *SessionRepository) Close(ctx context.Context, session *secondary.SessionRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET end_time = ?, closed = 1, duration_seconds = ?, notes = ? WHERE id = ?",
		session.EndTime, session.DurationSeconds, nullString(session.Notes), session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check close result: %w", err)
	}
	if affected == 0 {
		return fault.New(fault.KindNotFound, session.ID, "session %s not found", session.ID)
	}
	return nil
}

// AddItem records an item as touched in the session. Duplicates are ignored.
func (r *SessionRepository) AddItem(ctx context.Context, sessionID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO session_items (session_id, item_id, position)
			VALUES (?, ?, (SELECT COUNT(*) FROM session_items WHERE session_id = ?))`,
		sessionID, itemID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to add session item: %w", err)
	}
	return nil
}

// ListItems returns the items touched in the session.
func (r *SessionRepository) ListItems(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT item_id FROM session_items WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list session items: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// ListZoneItems returns the distinct items deployed in a zone across all of
// its sessions.
func (r *SessionRepository) ListZoneItems(ctx context.Context, deploymentID, zoneCode string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT si.item_id FROM session_items si
			JOIN sessions s ON s.id = si.session_id
			WHERE s.deployment_id = ? AND s.zone_code = ?
			ORDER BY si.item_id`,
		deploymentID, zoneCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone items: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// ListDeploymentItems returns zone -> distinct deployed items for the whole
// deployment.
func (r *SessionRepository) ListDeploymentItems(ctx context.Context, deploymentID string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT s.zone_code, si.item_id FROM session_items si
			JOIN sessions s ON s.id = si.session_id
			WHERE s.deployment_id = ?
			ORDER BY s.zone_code, si.item_id`,
		deploymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployment items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]string)
	for rows.Next() {
		var zone, item string
		if err := rows.Scan(&zone, &item); err != nil {
			return nil, fmt.Errorf("failed to scan deployment item: %w", err)
		}
		items[zone] = append(items[zone], item)
	}
	return items, rows.Err()
}

// NextID returns the next session ID.
func (r *SessionRepository) NextID(ctx context.Context, deploymentID string) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM sessions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next session ID: %w", err)
	}
	return fmt.Sprintf("SESS-%03d", maxID+1), nil
}

func scanSession(s scanner) (*secondary.SessionRecord, error) {
	var (
		endTime sql.NullTime
		closed  int
		notes   sql.NullString
	)
	record := &secondary.SessionRecord{}
	err := s.Scan(&record.ID, &record.DeploymentID, &record.ZoneCode,
		&record.StartTime, &endTime, &closed, &record.DurationSeconds, &notes)
	if err != nil {
		return nil, err
	}
	record.Closed = closed != 0
	if endTime.Valid {
		record.EndTime = endTime.Time
	}
	record.Notes = notes.String
	return record, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
