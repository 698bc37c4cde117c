package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// ExportCSV downloads the acting user's artworks as CSV.
func ExportCSV(c *gin.Context) {
	artworks, err := models.ListArtworks(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=artworks_export.csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{"ID", "Title", "Description", "Image URL", "Filename", "Folder", "Created At"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV header"})
		return
	}

	for _, a := range artworks {
		folderName := ""
		if a.Folder != nil {
			folderName = a.Folder.Name
		}
		if err := writer.Write([]string{
			a.ID,
			a.Title,
			a.Description,
			a.ImageURL,
			a.Filename,
			folderName,
			a.CreatedAt.String(),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
			return
		}
	}

	writer.Flush()
}

// ExportJSON downloads the acting user's artworks as JSON.
func ExportJSON(c *gin.Context) {
	artworks, err := models.ListArtworks(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}

	c.Header("Content-Disposition", "attachment;filename=artworks_export.json")

	jsonData, err := json.MarshalIndent(artworks, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Data(http.StatusOK, "application/json", jsonData)
}
