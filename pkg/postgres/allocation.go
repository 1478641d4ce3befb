package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/vaccination-hubs/pkg/db"
)

// GetAllocations retrieves the allocation records of a run ordered by hub, day and position
func (d *DB) GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, hub, day, position, ssn, age_interval
		FROM allocation
		WHERE run_id = $1
		ORDER BY hub, day, position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.Allocation
	for rows.Next() {
		var a db.Allocation
		if err := rows.Scan(&a.ID, &a.RunID, &a.Hub, &a.Day, &a.Position, &a.SSN, &a.AgeInterval); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// InsertAllocations inserts allocation records in a single batch within a transaction
func (d *DB) InsertAllocations(ctx context.Context, allocations []db.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertAllocations(ctx, tx, allocations); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertAllocations queues every record in one batch on tx
func insertAllocations(ctx context.Context, tx pgx.Tx, allocations []db.Allocation) error {
	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(`
			INSERT INTO allocation (id, run_id, hub, day, position, ssn, age_interval)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.RunID, a.Hub, a.Day, a.Position, a.SSN, a.AgeInterval)
	}

	results := tx.SendBatch(ctx, batch)
	for range allocations {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return nil
}
