package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/internal/auth"
	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
)

// Authenticate resolves the session credential when one is present. It never
// aborts: anonymous requests pass through with no identity set, so public
// handlers can serve them and protected ones can reject them.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetConfig()
		if claims := auth.ParseToken(extractToken(c), cfg.JWT.Secret); claims != nil {
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when Authenticate resolved no principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken reads the session cookie, falling back to a bearer header for
// non-browser clients.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie("token"); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "Bearer "
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	return ""
}
