package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/authz"
	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
)

// AdminCheck reports whether the caller holds the admin flag.
func AdminCheck(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"isAdmin": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAdmin": true})
}

// AdminListUsers returns every account with derived counts, newest-first.
func AdminListUsers(c *gin.Context) {
	if _, ok := adminUser(c); !ok {
		return
	}

	users, err := models.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminUpdateUser patches the pause and admin flags on a target account.
// An administrator can never strip their own admin flag.
func AdminUpdateUser(c *gin.Context) {
	admin, ok := adminUser(c)
	if !ok {
		return
	}

	var input struct {
		IsPaused *bool `json:"isPaused"`
		IsAdmin  *bool `json:"isAdmin"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	targetID := c.Param("id")
	if decision := authz.AdminUpdateUser(admin, targetID, input.IsAdmin); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "Cannot remove admin status from your own account"})
		return
	}

	target, err := models.GetUserByID(targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	updates := map[string]interface{}{}
	if input.IsPaused != nil {
		updates["is_paused"] = *input.IsPaused
	}
	if input.IsAdmin != nil {
		updates["is_admin"] = *input.IsAdmin
	}

	if len(updates) > 0 {
		if err := models.UpdateUserFlags(target, updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	updated, err := models.GetUserByID(targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if err := updated.LoadCounts(database.GetDB()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}

// AdminDeleteUser removes an account and everything it owns. Administrators
// cannot delete themselves through this surface.
func AdminDeleteUser(c *gin.Context) {
	admin, ok := adminUser(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if decision := authz.AdminDeleteUser(admin, targetID); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "Cannot delete your own admin account"})
		return
	}

	locators, err := models.DeleteUser(targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	// The rows are gone; asset cleanup is best-effort.
	for _, locator := range locators {
		storage.CleanupAsset(locator)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// AdminListArtworks returns every artwork, optionally filtered by creator.
func AdminListArtworks(c *gin.Context) {
	if _, ok := adminUser(c); !ok {
		return
	}

	artworks, err := models.ListArtworks(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

// AdminDeleteArtwork removes any artwork and cleans up its asset.
func AdminDeleteArtwork(c *gin.Context) {
	if _, ok := adminUser(c); !ok {
		return
	}

	artwork, err := models.GetArtworkByID(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artwork"})
		return
	}

	if err := models.DeleteArtwork(artwork.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	storage.CleanupAsset(artwork.ImageURL)

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
}
