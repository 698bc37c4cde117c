package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/authz"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// ListFolders lists folders. `creatorId=me` scopes to the acting user (and
// requires a session), any other creatorId scopes to that user, and no
// filter lists every folder. Public otherwise.
func ListFolders(c *gin.Context) {
	creatorID := c.Query("creatorId")

	if creatorID == "me" {
		creatorID = c.GetString("user_id")
		if creatorID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	folders, err := models.ListFolders(creatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// CreateFolder handles folder creation.
func CreateFolder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if decision := authz.CreateContent(user); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "Your account has been paused. You cannot create new folders."})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required"})
		return
	}

	folder := models.Folder{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   user.ID,
	}

	if err := models.CreateFolder(&folder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	created, err := models.GetFolderByID(folder.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load folder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"folder": created})
}

// GetFolder returns a folder with its artworks newest-first. Public.
func GetFolder(c *gin.Context) {
	folder, err := models.GetFolderByID(c.Param("id"), true)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder": folder})
}

// UpdateFolder patches name and description; only supplied fields change.
func UpdateFolder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	folder, err := models.GetFolderByID(c.Param("id"), false)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	if decision := authz.MutateOwned(user, folder.CreatorID); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "You can only edit your own folders"})
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
	if raw, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if raw, ok := fields["description"]; ok {
		var description *string
		if err := json.Unmarshal(raw, &description); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description"})
			return
		}
		updates["description"] = description
	}

	if len(updates) > 0 {
		if err := models.UpdateFolder(folder, updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folder"})
			return
		}
	}

	updated, err := models.GetFolderByID(folder.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder": updated})
}

// DeleteFolder removes the folder and detaches its artworks in one
// transaction. The artworks themselves survive.
func DeleteFolder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	folder, err := models.GetFolderByID(c.Param("id"), false)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	if decision := authz.MutateOwned(user, folder.CreatorID); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "You can only delete your own folders"})
		return
	}

	if err := models.DeleteFolder(folder.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}
