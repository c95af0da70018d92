package wishlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/auth"
)

type Store interface {
	Add(ctx context.Context, userID string, it Item) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]Item, error)
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
		h.log.Error("wishlist: list failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

type addReq struct {
	ProductID string  `json:"product_id" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Image     string  `json:"image"`
}

func (h *Handler) Add(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	it := Item{ProductID: req.ProductID, Price: req.Price, Name: req.Name, Image: req.Image}
	if err := h.store.Add(c.Request.Context(), userID, it); err != nil {
		h.log.Error("wishlist: add failed", "user_id", userID, "product_id", req.ProductID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save item"})
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
		h.log.Error("wishlist: remove failed", "user_id", userID, "product_id", req.ProductID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
