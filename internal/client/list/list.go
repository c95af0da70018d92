// Package list is the shopping-list layer on the client: one Store surface
// with two backings, a guest-local replica and the server-persisted list,
// selected by the resolved identity. Call sites never branch on
// authentication state themselves.
package list

import (
	"context"
	"errors"
)

// Entry is one shopping-list line, keyed by product id. Price, name and
// image are captured at add time.
type Entry struct {
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// Store is the single list surface. Add and SetQuantity are deliberately
// distinct operations: Add is "quick add" (increment an existing line,
// otherwise insert at quantity 1, ignoring Entry.Qty), SetQuantity replaces
// the quantity of an existing line and fails with ErrNotFound otherwise.
type Store interface {
	Add(ctx context.Context, e Entry) error
	Remove(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, qty int) error
	List(ctx context.Context) ([]Entry, error)
	Subtotal(ctx context.Context) (float64, error)
}

var (
	// ErrNotFound reports a SetQuantity against a product with no line.
	ErrNotFound = errors.New("list: no such line item")
	// ErrUnauthorized reports a server list call whose credential was
	// missing or cleared mid-flight. An authorization failure, not data
	// corruption.
	ErrUnauthorized = errors.New("list: not authenticated")
	// ErrNetwork wraps transport failures against the server list.
	ErrNetwork = errors.New("list: network error, please try again")
)
