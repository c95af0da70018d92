package auth

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/session"
)

// CtxIdentityKey is where the guard stores the trusted identity for the
// request. Handlers read it through CurrentIdentity.
const CtxIdentityKey = "trusted_identity"

const (
	loginPath   = "/login"
	defaultPath = "/"
)

// Access classes a path can require.
type Access int

const (
	AccessPublic Access = iota
	AccessIdentity
	AccessAdmin
)

// Rule maps a path prefix to the access it requires.
type Rule struct {
	Prefix string
	Access Access
}

// Guard is the trust boundary for inbound requests. Identity is resolved
// exclusively from the credential cookie; the readable mirrors are never
// consulted here.
type Guard struct {
	verifier session.Verifier
	rules    []Rule
}

func NewGuard(v session.Verifier, rules []Rule) *Guard {
	// Longest prefix wins so /admin can nest under an identity-only /.
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i].Prefix) > len(sorted[j].Prefix) })
	return &Guard{verifier: v, rules: sorted}
}

// Classify returns the access class required for path.
func (g *Guard) Classify(path string) Access {
	for _, r := range g.rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r.Access
		}
	}
	return AccessPublic
}

// Pages is the site-wide middleware. It resolves the trusted identity for
// every request and, for page navigation, redirects instead of erroring:
// missing identity on a protected path goes to the login page with the
// original path preserved, a non-admin on an admin path goes to the safe
// default. Token failures never surface; they degrade to anonymous.
func (g *Guard) Pages() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := session.IdentityFromRequest(c.Request, g.verifier)
		if ok {
			c.Set(CtxIdentityKey, id)
		}

		switch g.Classify(c.Request.URL.Path) {
		case AccessIdentity:
			if !ok {
				g.toLogin(c)
				return
			}
		case AccessAdmin:
			if !ok {
				g.toLogin(c)
				return
			}
			if !id.IsAdmin() {
				c.Redirect(http.StatusFound, defaultPath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func (g *Guard) toLogin(c *gin.Context) {
	target := loginPath + "?redirect=" + url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// RequireIdentity is the API variant: JSON 401 instead of a redirect.
// It relies on Pages having run first.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin is the API variant of the admin check: JSON 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}
		if !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the trusted identity the guard resolved for this
// request, if any.
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	v, exists := c.Get(CtxIdentityKey)
	if !exists {
		return identity.Identity{}, false
	}
	id, ok := v.(identity.Identity)
	return id, ok
}
