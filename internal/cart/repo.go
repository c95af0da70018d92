package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/domain/cart"
)

// ErrNoLine reports a quantity update against a (owner, product) pair that
// has no cart line.
var ErrNoLine = errors.New("cart: no such line item")

// Repo persists cart lines, one row per (owner, product). Concurrent
// mutations against the same pair are last-write-wins; there is no
// version column.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// QuickAdd increments the line for (userID, item.ProductID) if it exists,
// otherwise inserts it at quantity 1. The item's own Qty is ignored.
func (r *Repo) QuickAdd(ctx context.Context, userID string, it cart.Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, qty, price, name, image)
		VALUES ($1,$2,1,$3,$4,$5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET qty = cart_items.qty + 1, updated_at = now()
	`, userID, it.ProductID, it.Price, it.Name, it.Image)
	return err
}

// SetQuantity replaces the stored quantity for an existing line. It does not
// create lines: that is QuickAdd's job, and the two semantics stay separate.
func (r *Repo) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE cart_items SET qty = $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoLine
	}
	return nil
}

// Remove deletes the line. Removing an absent line is not an error.
func (r *Repo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *Repo) List(ctx context.Context, userID string) ([]cart.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, qty, price, name, image
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []cart.Item
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Price, &it.Name, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
