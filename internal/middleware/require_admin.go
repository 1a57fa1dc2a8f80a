package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/models"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin".
// À placer après RequireSession.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get(RoleKey)
	if !exists || role != string(models.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access only"})
		return
	}
	c.Next()
}
