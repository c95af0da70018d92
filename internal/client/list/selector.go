package list

import (
	"context"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
)

// IdentitySource reports the client's current display identity. The session
// store satisfies it.
type IdentitySource interface {
	Current() *identity.DisplayIdentity
}

// Selector routes every operation to the guest replica or the server list
// based on the resolved identity. There is no merge across the boundary:
// the moment a session exists the server list is the whole view, and the
// guest replica is left intact but unconsulted until logout.
type Selector struct {
	session IdentitySource
	local   Store
	remote  Store
}

func NewSelector(session IdentitySource, local, remote Store) *Selector {
	return &Selector{session: session, local: local, remote: remote}
}

// Active returns the backing store for the current identity.
func (s *Selector) Active() Store {
	if s.session.Current() != nil {
		return s.remote
	}
	return s.local
}

func (s *Selector) Add(ctx context.Context, e Entry) error {
	return s.Active().Add(ctx, e)
}

func (s *Selector) Remove(ctx context.Context, productID string) error {
	return s.Active().Remove(ctx, productID)
}

func (s *Selector) SetQuantity(ctx context.Context, productID string, qty int) error {
	return s.Active().SetQuantity(ctx, productID, qty)
}

func (s *Selector) List(ctx context.Context) ([]Entry, error) {
	return s.Active().List(ctx)
}

func (s *Selector) Subtotal(ctx context.Context) (float64, error) {
	return s.Active().Subtotal(ctx)
}
