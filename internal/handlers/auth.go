package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/middleware"
	"markethub_front_end/internal/session"
)

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	v := h.visitor(c)
	user, err := v.Session.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(authStatus(err, http.StatusUnauthorized), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	v := h.visitor(c)
	if err := v.Session.Register(c.Request.Context(), input.Name, input.Email, input.Password); err != nil {
		c.JSON(authStatus(err, http.StatusBadRequest), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	h.visitor(c).Session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/auth/me (derrière RequireSession)
func (h *Handler) Me(c *gin.Context) {
	user, _ := c.Get(middleware.UserKey)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// authStatus : l'API injoignable ou en erreur 5xx donne 502 ; un refus
// d'inscription 4xx garde son code ; sinon le code par défaut.
func authStatus(err error, fallback int) int {
	var ae *session.AuthError
	if !errors.As(err, &ae) {
		logger.Get().Error().Err(err).Msg("❌ erreur d'authentification inattendue")
		return http.StatusInternalServerError
	}
	switch {
	case ae.Status == 0 || ae.Status >= 500:
		return http.StatusBadGateway
	case ae.Op == "register" && ae.Status >= 400:
		return ae.Status
	default:
		return fallback
	}
}
