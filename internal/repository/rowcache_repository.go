package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/DavidRSR1/verifica/internal/model"
)

// RowCacheRepository is the per-table row cache behind the session. One
// accepted fetch replaces a section's rows wholesale; rows are never merged
// or patched. The backing database is in-memory, so the cache dies with the
// process.
type RowCacheRepository struct {
	db *sql.DB
}

// NewRowCacheRepository creates a new RowCacheRepository with the provided database connection.
func NewRowCacheRepository(db *sql.DB) *RowCacheRepository {
	return &RowCacheRepository{db: db}
}

// Replace swaps the cached rows of a section for the given set in a single
// transaction, preserving the upstream order.
func (r *RowCacheRepository) Replace(ctx context.Context, section model.Section, rows []model.Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache swap: %w", err)
	}
	//nolint:errcheck // rollback after commit is a no-op
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_rows WHERE section = ?`, section); err != nil {
		return fmt.Errorf("failed to clear cached rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cached_rows (section, seq, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, section, i, string(payload)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Rows returns a section's cached rows in the order they were stored.
// Returns an empty slice when nothing is cached.
func (r *RowCacheRepository) Rows(ctx context.Context, section model.Section) ([]model.Row, error) {
	result, err := r.db.QueryContext(ctx,
		`SELECT payload FROM cached_rows WHERE section = ? ORDER BY seq ASC`, section)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached rows: %w", err)
	}
	defer result.Close()

	rows := []model.Row{}
	for result.Next() {
		var payload string
		if err := result.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached row: %w", err)
		}
		var row model.Row
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, fmt.Errorf("failed to decode cached row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, result.Err()
}

// Clear drops a section's cached rows, used when the station or filters
// change and the old rows must not survive.
func (r *RowCacheRepository) Clear(ctx context.Context, section model.Section) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_rows WHERE section = ?`, section); err != nil {
		return fmt.Errorf("failed to clear cached rows: %w", err)
	}
	return nil
}
