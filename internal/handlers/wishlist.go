package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/wishlist
func (h *Handler) GetWishlist(c *gin.Context) {
	w := h.visitor(c).Wishlist
	c.JSON(http.StatusOK, gin.H{"items": w.Items(), "count": w.Count()})
}

// POST /api/wishlist/toggle
func (h *Handler) ToggleWishlist(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	product, ok := h.loadProduct(c, req.ProductID)
	if !ok {
		return
	}

	w := h.visitor(c).Wishlist
	wishlisted := w.Toggle(product)
	c.JSON(http.StatusOK, gin.H{
		"productId":  product.ID,
		"wishlisted": wishlisted,
		"items":      w.Items(),
		"count":      w.Count(),
	})
}
