package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// ListArtists returns every user with at least one artwork, alphabetically,
// with their derived counts. Public.
func ListArtists(c *gin.Context) {
	artists, err := models.ListArtists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// GetArtist returns an artist profile with their folders and counts. Public.
func GetArtist(c *gin.Context) {
	artist, err := models.GetArtistProfile(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": artist})
}
