package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/visitor"
)

const (
	UserKey = "user"
	RoleKey = "role"
)

// RequireSession refuse les visiteurs non authentifiés et place
// l'utilisateur et son rôle dans le contexte Gin
func RequireSession(reg *visitor.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := reg.Get(VisitorID(c)).Session.User()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set(UserKey, user)
		c.Set(RoleKey, string(user.Role))
		c.Next()
	}
}
