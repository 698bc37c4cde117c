package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/authz"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
)

// ListArtworks returns the whole gallery newest-first. Public.
func ListArtworks(c *gin.Context) {
	artworks, err := models.ListArtworks("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

// MyArtworks returns the acting user's artworks newest-first.
func MyArtworks(c *gin.Context) {
	artworks, err := models.ListArtworks(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

// CreateArtwork records an uploaded image as a new artwork.
func CreateArtwork(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if decision := authz.CreateContent(user); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "Your account has been paused. You cannot upload new artwork."})
		return
	}

	var input struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		ImageURL    string  `json:"imageUrl" binding:"required"`
		Filename    string  `json:"filename" binding:"required"`
		FolderID    *string `json:"folderId"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, imageUrl and filename are required"})
		return
	}

	var folderID *string
	if input.FolderID != nil && *input.FolderID != "" {
		folder, err := models.GetFolderByID(*input.FolderID, false)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Folder not found or access denied"})
			return
		}
		if decision := authz.AssignFolder(user, folder); !decision.Allowed {
			c.JSON(denyStatus(decision), gin.H{"error": "Folder not found or access denied"})
			return
		}
		folderID = input.FolderID
	}

	artwork := models.Artwork{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Filename:    input.Filename,
		CreatorID:   user.ID,
		FolderID:    folderID,
	}

	if err := models.CreateArtwork(&artwork); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}

	created, err := models.GetArtworkByID(artwork.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"artwork": created})
}

// GetArtwork returns a single artwork with creator and folder. Public.
func GetArtwork(c *gin.Context) {
	artwork, err := models.GetArtworkByID(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artwork"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artwork": artwork})
}

// UpdateArtwork patches title, description or folder. Only supplied fields
// change; an explicit null folderId detaches the artwork from its folder.
func UpdateArtwork(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
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

	if decision := authz.MutateOwned(user, artwork.CreatorID); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "You can only edit your own artworks"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{}
	if raw, ok := fields["title"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil || title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		updates["title"] = title
	}
	if raw, ok := fields["description"]; ok {
		var description *string
		if err := json.Unmarshal(raw, &description); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description"})
			return
		}
		updates["description"] = description
	}
	if raw, ok := fields["folderId"]; ok {
		var folderID *string
		if err := json.Unmarshal(raw, &folderID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folderId"})
			return
		}
		if folderID != nil && *folderID != "" {
			folder, err := models.GetFolderByID(*folderID, false)
			if err != nil {
				c.JSON(http.StatusForbidden, gin.H{"error": "Folder not found or access denied"})
				return
			}
			// Filing is checked against the artwork's owner, not the acting
			// principal: an admin cannot move someone's artwork into a folder
			// the owner does not hold.
			if folder.CreatorID != artwork.CreatorID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Folder not found or access denied"})
				return
			}
			updates["folder_id"] = *folderID
		} else {
			updates["folder_id"] = nil
		}
	}

	if len(updates) > 0 {
		if err := models.UpdateArtwork(artwork, updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
			return
		}
	}

	updated, err := models.GetArtworkByID(artwork.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artwork": updated})
}

// DeleteArtwork removes the row, then cleans up the backing asset
// best-effort. A failed asset delete never blocks the database delete.
func DeleteArtwork(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
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

	if decision := authz.MutateOwned(user, artwork.CreatorID); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "You can only delete your own artworks"})
		return
	}

	if err := models.DeleteArtwork(artwork.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	storage.CleanupAsset(artwork.ImageURL)

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
}

// BatchArtworks applies one action to several of the caller's artworks:
// moving them into a folder (or out of any folder) or deleting them.
func BatchArtworks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Action     string   `json:"action" binding:"required"`
		ArtworkIDs []string `json:"artworkIds" binding:"required"`
		FolderID   *string  `json:"folderId"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action and artworkIds are required"})
		return
	}

	if input.Action != "move" && input.Action != "delete" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported batch action"})
		return
	}

	if input.Action == "move" && input.FolderID != nil && *input.FolderID != "" {
		folder, err := models.GetFolderByID(*input.FolderID, false)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Folder not found or access denied"})
			return
		}
		if decision := authz.AssignFolder(user, folder); !decision.Allowed {
			c.JSON(denyStatus(decision), gin.H{"error": "Folder not found or access denied"})
			return
		}
	}

	results := make([]gin.H, 0, len(input.ArtworkIDs))
	successCount := 0
	for _, id := range input.ArtworkIDs {
		result := batchOne(user, input.Action, id, input.FolderID)
		if result["success"].(bool) {
			successCount++
		}
		results = append(results, result)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":         len(input.ArtworkIDs),
		"success_count": successCount,
		"results":       results,
	})
}

func batchOne(user *models.User, action, id string, folderID *string) gin.H {
	artwork, err := models.GetArtworkByID(id)
	if err != nil {
		return gin.H{"id": id, "success": false, "error": "Artwork not found"}
	}
	if decision := authz.MutateOwned(user, artwork.CreatorID); !decision.Allowed {
		return gin.H{"id": id, "success": false, "error": decision.Reason}
	}

	switch action {
	case "move":
		// Moving files into the caller's folders, so only the owner may move.
		if artwork.CreatorID != user.ID {
			return gin.H{"id": id, "success": false, "error": authz.ReasonNotOwner}
		}
		var target interface{}
		if folderID != nil && *folderID != "" {
			target = *folderID
		}
		if err := models.UpdateArtwork(artwork, map[string]interface{}{"folder_id": target}); err != nil {
			return gin.H{"id": id, "success": false, "error": "Failed to move artwork"}
		}
	case "delete":
		if err := models.DeleteArtwork(artwork.ID); err != nil {
			return gin.H{"id": id, "success": false, "error": "Failed to delete artwork"}
		}
		storage.CleanupAsset(artwork.ImageURL)
	}

	return gin.H{"id": id, "success": true}
}
