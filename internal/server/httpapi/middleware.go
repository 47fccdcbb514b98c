package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scanfact/scanfact/internal/server/auth"
)

const identityKey = "identity"

// authMiddleware verifies the bearer token and stashes the resolved
// identity in the gin context. Every route except /auth/login sits
// behind it.
func authMiddleware(verify func(c *gin.Context, token string) (*auth.Identity, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "missing bearer token"})
			return
		}

		id, err := verify(c, token)
		if err != nil {
			fail(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, *id)
		c.Next()
	}
}

// caller returns the identity the auth middleware resolved.
func caller(c *gin.Context) auth.Identity {
	return c.MustGet(identityKey).(auth.Identity)
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}

// recoveryMiddleware turns panics into 500s instead of dropped
// connections.
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
			}
		}()
		c.Next()
	}
}
