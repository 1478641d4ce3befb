package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/vaccination-hubs/pkg/db"
)

// GetRuns retrieves all allocation runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.AllocationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, reference_year, people_count, allocated_count, created_at
		FROM allocation_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation runs: %w", err)
	}
	defer rows.Close()

	var runs []db.AllocationRun
	for rows.Next() {
		var r db.AllocationRun
		if err := rows.Scan(&r.ID, &r.ReferenceYear, &r.PeopleCount, &r.AllocatedCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation runs: %w", err)
	}

	return runs, nil
}

const insertRunSQL = `
	INSERT INTO allocation_run (id, reference_year, people_count, allocated_count, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

// InsertRun inserts a new allocation run record
func (d *DB) InsertRun(ctx context.Context, run *db.AllocationRun) error {
	_, err := d.pool.Exec(ctx, insertRunSQL,
		run.ID, run.ReferenceYear, run.PeopleCount, run.AllocatedCount, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert allocation run: %w", err)
	}
	return nil
}

// PublishRun inserts a run and its allocations in one transaction.
// Nothing is written if any insert fails.
func (d *DB) PublishRun(ctx context.Context, run *db.AllocationRun, allocations []db.Allocation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertRun(ctx, tx, run); err != nil {
		return err
	}

	if len(allocations) > 0 {
		if err := insertAllocations(ctx, tx, allocations); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertRun(ctx context.Context, tx pgx.Tx, run *db.AllocationRun) error {
	_, err := tx.Exec(ctx, insertRunSQL,
		run.ID, run.ReferenceYear, run.PeopleCount, run.AllocatedCount, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert allocation run: %w", err)
	}
	return nil
}
