package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/catalog"
	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/middleware"
	"markethub_front_end/internal/models"
	"markethub_front_end/internal/wishlist"
)

type productView struct {
	models.Product
	StockStatus  string `json:"stockStatus"`
	IsWishlisted bool   `json:"isWishlisted"`
}

func view(w *wishlist.Wishlist, p models.Product) productView {
	return productView{
		Product:      p,
		StockStatus:  p.StockStatus(),
		IsWishlisted: w.Contains(p.ID),
	}
}

// favorites lit les favoris sans faire entrer le visiteur dans le registre
func (h *Handler) favorites(c *gin.Context) *wishlist.Wishlist {
	return h.reg.Wishlist(middleware.VisitorID(c))
}

// GET /api/products?q=
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("❌ chargement du catalogue impossible")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load products"})
		return
	}

	found := catalog.Search(products, c.Query("q"))
	w := h.favorites(c)
	views := make([]productView, 0, len(found))
	for _, p := range found {
		views = append(views, view(w, p))
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "count": len(views)})
}

// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.loadProduct(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view(h.favorites(c), product))
}
