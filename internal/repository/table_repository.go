package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// TableRepo reads the restaurant floor plan.
type TableRepo struct{ db *sql.DB }

func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// List returns all tables ordered by id.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, location, capacity FROM restaurant_tables ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := []model.Table{}
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Location, &t.Capacity); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// GetByID returns a single table or ErrNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (model.Table, error) {
	var t model.Table
	err := r.db.QueryRowContext(ctx,
		`SELECT id, location, capacity FROM restaurant_tables WHERE id = ?`, id).
		Scan(&t.ID, &t.Location, &t.Capacity)
	return t, notFound(err)
}

// SeedDefaults writes model.DefaultTables when restaurant_tables is empty
// and reports whether it did.  The count and the inserts share one
// transaction; a non-empty table set is never touched.
func (r *TableRepo) SeedDefaults(ctx context.Context) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurant_tables FOR UPDATE`).Scan(&n); err != nil {
		return false, err
	}
	if n != 0 {
		return false, nil
	}

	query := `INSERT INTO restaurant_tables (location, capacity) VALUES `
	args := make([]interface{}, 0, len(model.DefaultTables)*2)
	for i, t := range model.DefaultTables {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, t.Location, t.Capacity)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}
