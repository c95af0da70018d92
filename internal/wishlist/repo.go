package wishlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Item is a saved product. Wishlists have no quantities; a product is either
// saved or not, unique per (owner, product).
type Item struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Add saves the product. Saving an already-saved product is a no-op.
func (r *Repo) Add(ctx context.Context, userID string, it Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, price, name, image)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, it.ProductID, it.Price, it.Name, it.Image)
	return err
}

func (r *Repo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *Repo) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, price, name, image
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Price, &it.Name, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
