package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/storage"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit bloque un email après trop de logins refusés par l'API.
// Un login réussi remet le compteur à zéro.
func LoginRateLimit(counter storage.AttemptCounter, max int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login:" + strings.ToLower(input.Email)

		attempts, err := counter.Attempts(ctx, key)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("⚠️ lecture du compteur de tentatives impossible")
		}
		if attempts >= max {
			c.Header("Retry-After", fmt.Sprintf("%d", int(cooldown.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(cooldown.Minutes())),
				"retry_after": int(cooldown.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			if err := counter.Fail(ctx, key, cooldown); err != nil {
				logger.Get().Warn().Err(err).Msg("⚠️ incrément du compteur de tentatives impossible")
			}
		case http.StatusOK:
			if err := counter.Reset(ctx, key); err != nil {
				logger.Get().Warn().Err(err).Msg("⚠️ remise à zéro du compteur impossible")
			}
		}
	}
}
