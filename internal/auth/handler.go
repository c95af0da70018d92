package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/domain/user"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/session"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/token"
)

// Users is the user lookup/creation surface the handler needs.
type Users interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (user.User, error)
	ByEmail(ctx context.Context, email string) (user.User, error)
}

type Dependencies struct {
	Users   Users
	Tokens  *token.Service
	Cookies *session.Writer
	Log     *slog.Logger
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type signupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Signup creates the account and starts a session immediately.
func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	pwHash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "signup failed"})
		return
	}

	u, err := h.deps.Users.Create(c.Request.Context(), strings.TrimSpace(req.Name), normalizeEmail(req.Email), pwHash, identity.RoleUser)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "email already registered"})
			return
		}
		h.deps.Log.Error("auth: signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "signup failed"})
		return
	}

	h.startSession(c, u, http.StatusCreated)
}

// Login verifies credentials and writes the session cookie triple. Unknown
// email and wrong password produce the same response.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	u, err := h.deps.Users.ByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": invalidCredentialsMsg})
		return
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": invalidCredentialsMsg})
		return
	}

	h.startSession(c, u, http.StatusOK)
}

func (h *Handler) startSession(c *gin.Context, u user.User, status int) {
	id := identity.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}

	tok, err := h.deps.Tokens.Mint(id)
	if err != nil {
		h.deps.Log.Error("auth: token mint failed", "user_id", u.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "login failed"})
		return
	}

	h.deps.Cookies.Set(c, id, tok)
	c.JSON(status, gin.H{"success": true, "user": id.Display()})
}

// Logout clears the cookie triple. Idempotent: logging out twice, or while
// never logged in, succeeds the same way.
func (h *Handler) Logout(c *gin.Context) {
	h.deps.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the identity resolved by the guard for this request.
func (h *Handler) Me(c *gin.Context) {
	id, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": id.Display()})
}
