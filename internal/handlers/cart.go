package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/catalog"
	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/models"
)

func cartResponse(message string, s models.CartSummary) gin.H {
	res := gin.H{
		"items":      s.Items,
		"total":      s.Total,
		"count":      s.Count,
		"totalItems": s.TotalItems,
	}
	if message != "" {
		res["message"] = message
	}
	return res
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse("", h.visitor(c).Cart.Summary()))
}

// POST /api/cart/add : ajoute un produit du catalogue
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"omitempty,gte=1,lte=999"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	v := h.visitor(c)
	product, ok := h.loadProduct(c, input.ProductID)
	if !ok {
		return
	}

	v.Cart.AddProduct(product, catalog.NewQuantity(input.Quantity).Value())
	c.JSON(http.StatusOK, cartResponse("Added to cart", v.Cart.Summary()))
}

// POST /api/cart/items : ajoute une ligne déjà construite par le client
func (h *Handler) AddCartItem(c *gin.Context) {
	var input struct {
		ID            string   `json:"id" binding:"required"`
		Name          string   `json:"name"`
		Price         float64  `json:"price" binding:"gte=0"`
		DiscountPrice *float64 `json:"discountPrice" binding:"omitempty,gte=0"`
		Image         string   `json:"image"`
		Quantity      int      `json:"quantity" binding:"omitempty,gte=1,lte=999"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	v := h.visitor(c)
	v.Cart.AddItem(models.CartItem{
		ID:            input.ID,
		Name:          input.Name,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Image:         input.Image,
	}, input.Quantity)
	c.JSON(http.StatusOK, cartResponse("Added to cart", v.Cart.Summary()))
}

// PUT /api/cart/:productId : quantité exacte, 0 retire la ligne
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var input struct {
		Quantity *int `json:"quantity" binding:"required,lte=999"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	v := h.visitor(c)
	v.Cart.UpdateQuantity(c.Param("productId"), *input.Quantity)
	c.JSON(http.StatusOK, cartResponse("Quantity updated", v.Cart.Summary()))
}

// DELETE /api/cart/:productId
func (h *Handler) RemoveFromCart(c *gin.Context) {
	v := h.visitor(c)
	v.Cart.RemoveItem(c.Param("productId"))
	c.JSON(http.StatusOK, cartResponse("Removed from cart", v.Cart.Summary()))
}

// DELETE /api/cart/clear
func (h *Handler) ClearCart(c *gin.Context) {
	v := h.visitor(c)
	v.Cart.Clear()
	c.JSON(http.StatusOK, cartResponse("Cart cleared", v.Cart.Summary()))
}

// loadProduct écrit lui-même la réponse d'erreur et prévient le visiteur
func (h *Handler) loadProduct(c *gin.Context, id string) (models.Product, bool) {
	product, err := h.catalog.Product(c.Request.Context(), id)
	if err == nil {
		return product, true
	}

	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return models.Product{}, false
	}

	logger.Get().Error().Err(err).Str("product_id", id).Msg("❌ chargement produit impossible")
	h.visitor(c).Notifier.Notify(models.Notification{
		Title:       "Error",
		Description: "Failed to load product details",
		Variant:     models.VariantDestructive,
	})
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load product"})
	return models.Product{}, false
}
