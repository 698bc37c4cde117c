package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/internal/authz"
	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
	"github.com/KAMEVETRICS/gensyn-portal/internal/utils"
)

// UploadImage stores an artwork image and returns its locator. The artwork
// record is created by a follow-up call; a record that never arrives leaves
// an orphaned asset, which is an accepted leak.
func UploadImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if decision := authz.CreateContent(user); !decision.Allowed {
		c.JSON(denyStatus(decision), gin.H{"error": "Your account has been paused. You cannot upload new artwork."})
		return
	}

	data, header, ok := readUpload(c, storage.CategoryArtworks)
	if !ok {
		return
	}

	locator, err := storage.Get().Put(data, storage.CategoryArtworks, header.filename, header.contentType)
	if err != nil {
		respondPutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": locator,
		"filename": header.filename,
	})
}

// UploadAvatar replaces the acting user's avatar. Paused users may still
// change their avatar; the pause only blocks new content.
func UploadAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, header, ok := readUpload(c, storage.CategoryAvatars)
	if !ok {
		return
	}

	normalized, err := utils.NormalizeAvatar(data, header.contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
		return
	}

	locator, err := storage.Get().Put(normalized, storage.CategoryAvatars, header.filename, header.contentType)
	if err != nil {
		respondPutError(c, err)
		return
	}

	oldAvatar := user.AvatarURL
	if err := models.UpdateUserFlags(user, map[string]interface{}{"avatar_url": locator}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	if oldAvatar != "" {
		storage.CleanupAsset(oldAvatar)
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": locator})
}

type uploadHeader struct {
	filename    string
	contentType string
}

// readUpload pulls the multipart file and runs the pre-persistence policy
// (declared type, category size ceiling) before a single byte is stored.
func readUpload(c *gin.Context, category storage.Category) ([]byte, uploadHeader, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return nil, uploadHeader{}, false
	}

	header := uploadHeader{
		filename:    file.Filename,
		contentType: file.Header.Get("Content-Type"),
	}

	limits := storage.LimitsFromConfig(config.GetConfig())
	if err := limits.Validate(category, file.Size, header.contentType); err != nil {
		respondPutError(c, err)
		return nil, uploadHeader{}, false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return nil, uploadHeader{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return nil, uploadHeader{}, false
	}

	return data, header, true
}

func respondPutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images are allowed."})
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds the limit"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
	}
}
