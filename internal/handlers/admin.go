package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"visitors": h.reg.Len()})
}
