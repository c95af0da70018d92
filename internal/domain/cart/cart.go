package cart

// Item is one persisted cart line. Price, name and image are denormalized at
// add time; they are the price-at-add, not a live catalog lookup.
type Item struct {
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

type Cart struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
}

// Subtotal is always derived from the lines, never stored.
func Subtotal(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Qty)
	}
	return sum
}
