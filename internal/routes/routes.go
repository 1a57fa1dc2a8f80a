package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"markethub_front_end/internal/handlers"
	"markethub_front_end/internal/middleware"
	"markethub_front_end/internal/storage"
	"markethub_front_end/internal/visitor"
)

type Deps struct {
	Registry    *visitor.Registry
	Catalog     handlers.Catalog
	Sessions    sessions.Store
	Attempts    storage.AttemptCounter
	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	corsCfg := cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// Liste vide : toute origine est acceptée et renvoyée telle quelle,
	// "*" étant refusé par les navigateurs avec les cookies
	if len(d.CORSOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsCfg))

	h := handlers.New(d.Registry, d.Catalog)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api", middleware.Visitor(d.Sessions))

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(d.Attempts, middleware.LoginMaxAttempts, middleware.LoginCooldown), h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireSession(d.Registry), h.Me)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddToCart)
		cart.POST("/items", h.AddCartItem)
		cart.PUT("/:productId", h.UpdateCartQuantity)
		cart.DELETE("/clear", h.ClearCart)
		cart.DELETE("/:productId", h.RemoveFromCart)
	}

	wishlist := api.Group("/wishlist")
	{
		wishlist.GET("", h.GetWishlist)
		wishlist.POST("/toggle", h.ToggleWishlist)
	}

	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}

	admin := api.Group("/admin", middleware.RequireSession(d.Registry), middleware.RequireAdmin)
	{
		admin.GET("/stats", h.Stats)
	}

	r.GET("/ws", middleware.Visitor(d.Sessions), h.Events(handlers.NewUpgrader(d.CORSOrigins)))
}
