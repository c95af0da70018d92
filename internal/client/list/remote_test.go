package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/auth"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/cart"
	domain "github.com/YxshR/ecommerce-perfume-website-sub000/internal/domain/cart"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
	srvsession "github.com/YxshR/ecommerce-perfume-website-sub000/internal/session"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/token"
)

// memCartStore backs the real cart handler in these tests.
type memCartStore struct {
	lines map[string][]domain.Item
}

func newMemCartStore() *memCartStore {
	return &memCartStore{lines: map[string][]domain.Item{}}
}

func (m *memCartStore) QuickAdd(_ context.Context, userID string, it domain.Item) error {
	for i, line := range m.lines[userID] {
		if line.ProductID == it.ProductID {
			m.lines[userID][i].Qty++
			return nil
		}
	}
	it.Qty = 1
	m.lines[userID] = append(m.lines[userID], it)
	return nil
}

func (m *memCartStore) SetQuantity(_ context.Context, userID, productID string, qty int) error {
	for i, line := range m.lines[userID] {
		if line.ProductID == productID {
			m.lines[userID][i].Qty = qty
			return nil
		}
	}
	return cart.ErrNoLine
}

func (m *memCartStore) Remove(_ context.Context, userID, productID string) error {
	kept := m.lines[userID][:0]
	for _, line := range m.lines[userID] {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	m.lines[userID] = kept
	return nil
}

func (m *memCartStore) List(_ context.Context, userID string) ([]domain.Item, error) {
	return m.lines[userID], nil
}

// startCartServer stands up the real guard + cart handler stack and returns
// an authenticated Remote plus the server base URL.
func startCartServer(t *testing.T) (*Remote, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := token.NewService("remote-test-secret", time.Hour, log)
	guard := auth.NewGuard(tokens, nil)
	h := cart.NewHandler(newMemCartStore(), log)

	r := gin.New()
	r.Use(guard.Pages())
	api := r.Group("/api", auth.RequireIdentity())
	api.GET("/cart", h.Get)
	api.POST("/cart/items", h.QuickAdd)
	api.PATCH("/cart/items", h.SetQuantity)
	api.DELETE("/cart/items", h.Remove)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	tok, err := tokens.Mint(identity.Identity{ID: "u-1", Name: "Vera", Role: identity.RoleUser})
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	jar.SetCookies(base, []*http.Cookie{{Name: srvsession.CredentialCookie, Value: tok}})

	remote, err := NewRemote(srv.URL, &http.Client{Jar: jar})
	require.NoError(t, err)
	return remote, srv.URL
}

func TestRemoteRoundtrip(t *testing.T) {
	ctx := context.Background()
	remote, _ := startCartServer(t)

	require.NoError(t, remote.Add(ctx, entry("p1", 100)))
	require.NoError(t, remote.Add(ctx, entry("p1", 100)))

	got, err := remote.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Qty)

	require.NoError(t, remote.SetQuantity(ctx, "p1", 5))
	sum, err := remote.Subtotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500.0, sum)

	require.NoError(t, remote.Remove(ctx, "p1"))
	got, err = remote.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRemoteSetQuantityMissingLine(t *testing.T) {
	ctx := context.Background()
	remote, _ := startCartServer(t)

	err := remote.SetQuantity(ctx, "ghost", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoteWithoutCredential(t *testing.T) {
	// A mutation whose credential was cleared mid-flight must come back as
	// an authorization failure.
	ctx := context.Background()
	_, baseURL := startCartServer(t)

	bare, err := NewRemote(baseURL, &http.Client{})
	require.NoError(t, err)

	err = bare.Add(ctx, entry("p1", 100))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = bare.List(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRemoteNetworkFailure(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	remote, err := NewRemote(baseURL, &http.Client{})
	require.NoError(t, err)

	err = remote.Add(ctx, entry("p1", 100))
	assert.ErrorIs(t, err, ErrNetwork)
}
