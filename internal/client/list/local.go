package list

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Local is the guest replica: a client-local SQLite table keyed by product
// id, with no owner column. It survives restarts the way browser storage
// survives page loads, and it is never merged into the server list.
type Local struct {
	db *sql.DB
}

// NewLocal wraps an already-open database. Call Migrate before first use.
func NewLocal(db *sql.DB) *Local {
	return &Local{db: db}
}

// OpenLocal opens (or creates) the replica at path and migrates it.
// Use ":memory:" for throwaway stores.
func OpenLocal(ctx context.Context, path string) (*Local, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("guest replica open: %w", err)
	}
	// One connection: SQLite is the whole store here, and ":memory:" opens
	// a separate database per connection otherwise.
	db.SetMaxOpenConns(1)
	l := NewLocal(db)
	if err := l.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Local) Migrate(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS guest_cart (
			product_id TEXT PRIMARY KEY,
			qty INTEGER NOT NULL CHECK (qty > 0),
			price REAL NOT NULL,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("guest replica migrate: %w", err)
	}
	return nil
}

func (l *Local) Close() error { return l.db.Close() }

func (l *Local) Add(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO guest_cart (product_id, qty, price, name, image)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET qty = qty + 1
	`, e.ProductID, e.Price, e.Name, e.Image)
	return err
}

func (l *Local) Remove(ctx context.Context, productID string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM guest_cart WHERE product_id = ?`, productID)
	return err
}

func (l *Local) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("list: quantity must be positive, got %d", qty)
	}
	res, err := l.db.ExecContext(ctx, `
		UPDATE guest_cart SET qty = ? WHERE product_id = ?
	`, qty, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (l *Local) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT product_id, qty, price, name, image FROM guest_cart ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.Qty, &e.Price, &e.Name, &e.Image); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Subtotal is recomputed from the rows on every call, never cached.
func (l *Local) Subtotal(ctx context.Context) (float64, error) {
	var sum float64
	err := l.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(qty * price), 0) FROM guest_cart
	`).Scan(&sum)
	return sum, err
}
