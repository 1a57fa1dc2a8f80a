package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"markethub_front_end/internal/logger"
)

const (
	VisitorCookie = "markethub_visitor"
	VisitorKey    = "visitor_id"
	visitorMaxAge = 86400 * 30
)

// NewCookieStore configure le cookie signé qui identifie chaque navigateur
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(visitorMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   visitorMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Visitor attribue un identifiant de visiteur stable via le cookie signé.
// Un cookie absent ou falsifié donne un nouveau visiteur.
func Visitor(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, VisitorCookie)
		if err != nil {
			logger.Get().Debug().Err(err).Msg("cookie visiteur invalide, nouveau visiteur")
		}

		id, _ := sess.Values["id"].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values["id"] = id
			if err := sess.Save(c.Request, c.Writer); err != nil {
				logger.Get().Error().Err(err).Msg("❌ écriture du cookie visiteur impossible")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
				return
			}
		}

		c.Set(VisitorKey, id)
		c.Next()
	}
}

func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}
