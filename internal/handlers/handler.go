package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/middleware"
	"markethub_front_end/internal/models"
	"markethub_front_end/internal/visitor"
)

// Catalog est la source des fiches produits
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
}

type Handler struct {
	reg     *visitor.Registry
	catalog Catalog
}

func New(reg *visitor.Registry, catalog Catalog) *Handler {
	return &Handler{reg: reg, catalog: catalog}
}

func (h *Handler) visitor(c *gin.Context) *visitor.Visitor {
	return h.reg.Get(middleware.VisitorID(c))
}
