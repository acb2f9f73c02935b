// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// DeploymentRepository implements secondary.DeploymentRepository with SQLite.
type DeploymentRepository struct {
	db *sql.DB
}

// NewDeploymentRepository creates a new SQLite deployment repository.
func NewDeploymentRepository(db *sql.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

// Create persists a deployment together with its fixed zone set.
// The record must have ID and Status pre-populated by the service layer.
func (r *DeploymentRepository) Create(ctx context.Context, dep *secondary.DeploymentRecord, zones []*secondary.ZoneRecord) error {
	if dep.ID == "" {
		return fmt.Errorf("deployment ID must be pre-populated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO deployments (id, season, year, status) VALUES (?, ?, ?, ?)",
		dep.ID, dep.Season, dep.Year, dep.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create deployment: %w", err)
	}

	for i, zone := range zones {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO zones (deployment_id, code, name, receptacle_id, position) VALUES (?, ?, ?, ?, ?)",
			dep.ID, zone.Code, zone.Name, zone.ReceptacleID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to create zone %s: %w", zone.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deployment: %w", err)
	}
	return nil
}

// GetByID retrieves a deployment by its ID.
func (r *DeploymentRepository) GetByID(ctx context.Context, id string) (*secondary.DeploymentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, season, year, status, setup_started_at, setup_completed_at, teardown_started_at, teardown_completed_at, created_at FROM deployments WHERE id = ?",
		id,
	)
	record, err := scanDeployment(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, id, "deployment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment: %w", err)
	}
	return record, nil
}

// List retrieves all deployments, newest first.
func (r *DeploymentRepository) List(ctx context.Context) ([]*secondary.DeploymentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, season, year, status, setup_started_at, setup_completed_at, teardown_started_at, teardown_completed_at, created_at FROM deployments ORDER BY year DESC, created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	defer rows.Close()

	var deployments []*secondary.DeploymentRecord
	for rows.Next() {
		record, err := scanDeployment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deployment: %w", err)
		}
		deployments = append(deployments, record)
	}
	return deployments, rows.Err()
}

// UpdateStatus stores a phase transition and its timestamps.
func (r *DeploymentRepository) UpdateStatus(ctx context.Context, dep *secondary.DeploymentRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE deployments SET status = ?, setup_started_at = ?, setup_completed_at = ?,
			teardown_started_at = ?, teardown_completed_at = ? WHERE id = ?`,
		dep.Status,
		nullString(dep.SetupStartedAt), nullString(dep.SetupCompletedAt),
		nullString(dep.TeardownStartedAt), nullString(dep.TeardownCompletedAt),
		dep.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deployment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fault.New(fault.KindNotFound, dep.ID, "deployment %s not found", dep.ID)
	}
	return nil
}

// ListZones retrieves the deployment's zones in board order.
func (r *DeploymentRepository) ListZones(ctx context.Context, deploymentID string) ([]*secondary.ZoneRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT deployment_id, code, name, receptacle_id FROM zones WHERE deployment_id = ? ORDER BY position",
		deploymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	var zones []*secondary.ZoneRecord
	for rows.Next() {
		zone := &secondary.ZoneRecord{}
		if err := rows.Scan(&zone.DeploymentID, &zone.Code, &zone.Name, &zone.ReceptacleID); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDeployment(s scanner) (*secondary.DeploymentRecord, error) {
	var (
		setupStarted, setupCompleted  sql.NullTime
		teardownStarted, teardownDone sql.NullTime
		createdAt                     time.Time
	)
	record := &secondary.DeploymentRecord{}
	err := s.Scan(&record.ID, &record.Season, &record.Year, &record.Status,
		&setupStarted, &setupCompleted, &teardownStarted, &teardownDone, &createdAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if setupStarted.Valid {
		record.SetupStartedAt = setupStarted.Time.Format(time.RFC3339)
	}
	if setupCompleted.Valid {
		record.SetupCompletedAt = setupCompleted.Time.Format(time.RFC3339)
	}
	if teardownStarted.Valid {
		record.TeardownStartedAt = teardownStarted.Time.Format(time.RFC3339)
	}
	if teardownDone.Valid {
		record.TeardownCompletedAt = teardownDone.Time.Format(time.RFC3339)
	}
	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
