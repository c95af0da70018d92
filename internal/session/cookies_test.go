package session

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubVerifier struct {
	want string
	id   identity.Identity
}

func (s stubVerifier) Verify(token string) (identity.Identity, bool) {
	if token == s.want {
		return s.id, true
	}
	return identity.Identity{}, false
}

func cookiesByName(t *testing.T, rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	t.Helper()
	out := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		out[ck.Name] = ck
	}
	return out
}

func TestSetWritesTriple(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	id := identity.Identity{ID: "u-1", Name: "Rose Oud", Email: "rose@example.com", Role: identity.RoleUser}
	w := NewWriter(24*time.Hour, false, discardLogger())
	w.Set(c, id, "signed-token-value")

	cks := cookiesByName(t, rec)
	require.Len(t, cks, 3)

	cred := cks[CredentialCookie]
	require.NotNil(t, cred)
	assert.Equal(t, "signed-token-value", cred.Value)
	assert.True(t, cred.HttpOnly)
	assert.Equal(t, "/", cred.Path)
	assert.Equal(t, 86400, cred.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cred.SameSite)

	flag := cks[LoginFlagCookie]
	require.NotNil(t, flag)
	assert.Equal(t, "true", flag.Value)
	assert.False(t, flag.HttpOnly)
	assert.Equal(t, 86400, flag.MaxAge)

	mirror := cks[MirrorCookie]
	require.NotNil(t, mirror)
	assert.False(t, mirror.HttpOnly)

	raw, err := url.QueryUnescape(mirror.Value)
	require.NoError(t, err)
	var d identity.DisplayIdentity
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, id.Display(), d)
}

func TestSetSecureInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := NewWriter(time.Hour, true, discardLogger())
	w.Set(c, identity.Identity{ID: "u-1", Role: identity.RoleUser}, "tok")

	for _, ck := range rec.Result().Cookies() {
		assert.True(t, ck.Secure, "cookie %s must be secure", ck.Name)
	}
}

func TestMirrorNeverCarriesTokenMaterial(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := NewWriter(time.Hour, false, discardLogger())
	w.Set(c, identity.Identity{ID: "u-1", Role: identity.RoleUser}, "the-signed-token")

	cks := cookiesByName(t, rec)
	assert.NotContains(t, cks[MirrorCookie].Value, "the-signed-token")
	assert.NotContains(t, cks[LoginFlagCookie].Value, "the-signed-token")
}

func TestClearExpiresTriple(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := NewWriter(time.Hour, false, discardLogger())
	w.Clear(c)

	cks := cookiesByName(t, rec)
	require.Len(t, cks, 3)
	for name, ck := range cks {
		assert.Empty(t, ck.Value, "cookie %s must be emptied", name)
		assert.Negative(t, ck.MaxAge, "cookie %s must expire immediately", name)
	}
}

func TestIdentityFromRequest(t *testing.T) {
	v := stubVerifier{
		want: "good-token",
		id:   identity.Identity{ID: "u-9", Role: identity.RoleAdmin},
	}

	t.Run("no cookie resolves anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := IdentityFromRequest(r, v)
		assert.False(t, ok)
	})

	t.Run("invalid token resolves anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CredentialCookie, Value: "forged"})
		_, ok := IdentityFromRequest(r, v)
		assert.False(t, ok)
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CredentialCookie, Value: "good-token"})
		id, ok := IdentityFromRequest(r, v)
		require.True(t, ok)
		assert.Equal(t, "u-9", id.ID)
	})

	t.Run("mirrors alone never authenticate", func(t *testing.T) {
		// A forged logged-in mirror with no credential cookie is logged out.
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: LoginFlagCookie, Value: "true"})
		r.AddCookie(&http.Cookie{Name: MirrorCookie, Value: `{"id":"u-9","role":"admin"}`})
		_, ok := IdentityFromRequest(r, v)
		assert.False(t, ok)
	})
}
