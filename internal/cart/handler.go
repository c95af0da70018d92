package cart

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/auth"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/domain/cart"
)

// Store is the persisted cart surface the handlers call. *Repo implements it.
type Store interface {
	QuickAdd(ctx context.Context, userID string, it cart.Item) error
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]cart.Item, error)
}

type Handler struct {
	store Store
	log   *slog.Logger
}

func NewHandler(store Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) owner(c *gin.Context) (string, bool) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		// The guard normally catches this; a cleared credential racing an
		// in-flight mutation lands here and is an auth failure, not corruption.
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
		return "", false
	}
	return id.ID, true
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("cart: list failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart.Cart{Items: items, Subtotal: cart.Subtotal(items)},
	})
}

type quickAddReq struct {
	ProductID string  `json:"product_id" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Image     string  `json:"image"`
}

// QuickAdd is the storefront "add to cart" button: repeat adds bump the
// quantity by one.
func (h *Handler) QuickAdd(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	var req quickAddReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	it := cart.Item{ProductID: req.ProductID, Price: req.Price, Name: req.Name, Image: req.Image}
	if err := h.store.QuickAdd(c.Request.Context(), userID, it); err != nil {
		h.log.Error("cart: quick add failed", "user_id", userID, "product_id", req.ProductID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to add item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setQtyReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty" binding:"required"`
}

// SetQuantity replaces the quantity on an existing line (the cart page
// stepper). It never increments and never creates lines.
func (h *Handler) SetQuantity(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	var req setQtyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Qty <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	err := h.store.SetQuantity(c.Request.Context(), userID, req.ProductID, req.Qty)
	if errors.Is(err, ErrNoLine) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "item is not in the cart"})
		return
	}
	if err != nil {
		h.log.Error("cart: set quantity failed", "user_id", userID, "product_id", req.ProductID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update quantity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type removeReq struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *Handler) Remove(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	var req removeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := h.store.Remove(c.Request.Context(), userID, req.ProductID); err != nil {
		h.log.Error("cart: remove failed", "user_id", userID, "product_id", req.ProductID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
