package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
)

// The session cookie triple. Only CredentialCookie is authoritative; the two
// readable cookies exist so the client can render identity without a round
// trip and must never feed an authorization decision. Absence of the
// credential cookie always means logged out, whatever the mirrors claim.
const (
	CredentialCookie = "auth_token"
	LoginFlagCookie  = "logged_in"
	MirrorCookie     = "user_info"
)

// Verifier validates a credential cookie value into a trusted identity.
type Verifier interface {
	Verify(token string) (identity.Identity, bool)
}

// Writer writes and clears the cookie triple.
type Writer struct {
	maxAge int
	secure bool
	log    *slog.Logger
}

// NewWriter configures the cookie writer. maxAge should match the token TTL
// so the credential and its mirrors expire together. secure is off only in
// local development.
func NewWriter(maxAge time.Duration, secure bool, log *slog.Logger) *Writer {
	return &Writer{maxAge: int(maxAge.Seconds()), secure: secure, log: log}
}

// Set writes all three cookies. Writes are independent: a mirror that cannot
// be serialized is logged and skipped, the cookies already written stay as
// they are. Readers tolerate partial triples because only the credential
// cookie carries meaning.
func (w *Writer) Set(c *gin.Context, id identity.Identity, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CredentialCookie, token, w.maxAge, "/", "", w.secure, true)
	c.SetCookie(LoginFlagCookie, "true", w.maxAge, "/", "", w.secure, false)

	mirror, err := json.Marshal(id.Display())
	if err != nil {
		w.log.Warn("session: mirror cookie not written", "user_id", id.ID, "error", err)
		return
	}
	c.SetCookie(MirrorCookie, string(mirror), w.maxAge, "/", "", w.secure, false)
}

// Clear expires all three cookies immediately. Safe to call on an already
// logged-out request.
func (w *Writer) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CredentialCookie, "", -1, "/", "", w.secure, true)
	c.SetCookie(LoginFlagCookie, "", -1, "/", "", w.secure, false)
	c.SetCookie(MirrorCookie, "", -1, "/", "", w.secure, false)
}

// IdentityFromRequest resolves the trusted identity for a request. It
// consults only the credential cookie; mirrors are ignored. Every failure
// mode (no cookie, empty value, bad signature, expired token) resolves to
// anonymous rather than an error so guards fail closed.
func IdentityFromRequest(r *http.Request, v Verifier) (identity.Identity, bool) {
	ck, err := r.Cookie(CredentialCookie)
	if err != nil || ck.Value == "" {
		return identity.Identity{}, false
	}
	return v.Verify(ck.Value)
}
