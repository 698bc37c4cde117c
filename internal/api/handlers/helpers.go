package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/internal/authz"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// currentUser loads the acting user's row fresh for this request. Admin and
// paused flags are never trusted from the token.
func currentUser(c *gin.Context) (*models.User, bool) {
	id := c.GetString("user_id")
	if id == "" {
		return nil, false
	}
	user, err := models.GetUserByID(id)
	if err != nil {
		return nil, false
	}
	return user, true
}

// adminUser resolves the acting user and requires the admin flag, responding
// 403 otherwise. The moderation surface answers 403 even to anonymous
// callers, matching the admin check endpoint.
func adminUser(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized - Admin access required"})
		return nil, false
	}
	if decision := authz.AdminAction(user); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized - Admin access required"})
		return nil, false
	}
	return user, true
}

// denyStatus maps a gate denial to its HTTP status. Self-protection denials
// are client errors on the moderation surface; everything else is forbidden.
func denyStatus(decision authz.Decision) int {
	if decision.Reason == authz.ReasonSelfProtect {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}
