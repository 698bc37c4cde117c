package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
)

// Artwork is a single uploaded piece. FolderID may only reference a folder
// owned by the same creator; handlers enforce that before writing.
type Artwork struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `gorm:"not null" json:"imageUrl"`
	Filename    string    `json:"filename"`
	CreatorID   string    `gorm:"type:uuid;not null;index" json:"creatorId"`
	FolderID    *string   `gorm:"type:uuid;index" json:"folderId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Creator *User   `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Folder  *Folder `gorm:"foreignKey:FolderID;constraint:OnDelete:SET NULL" json:"folder,omitempty"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// GetArtworkByID retrieves an artwork with its creator and folder.
func GetArtworkByID(id string) (*Artwork, error) {
	var artwork Artwork
	err := database.GetDB().
		Preload("Creator").
		Preload("Folder").
		Where("id = ?", id).
		First(&artwork).Error
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

// ListArtworks returns artworks newest-first with their creators. An empty
// creatorID lists the whole gallery.
func ListArtworks(creatorID string) ([]Artwork, error) {
	db := database.GetDB()
	query := db.Preload("Creator").Preload("Folder")
	if creatorID != "" {
		query = query.Where("creator_id = ?", creatorID)
	}
	var artworks []Artwork
	if err := query.Order("created_at DESC").Find(&artworks).Error; err != nil {
		return nil, err
	}
	return artworks, nil
}

// CreateArtwork persists a new artwork row.
func CreateArtwork(artwork *Artwork) error {
	return database.GetDB().Create(artwork).Error
}

// UpdateArtwork applies a partial patch; unnamed columns are untouched. A nil
// folder_id entry in the map clears the folder relation.
func UpdateArtwork(artwork *Artwork, updates map[string]interface{}) error {
	return database.GetDB().Model(artwork).Updates(updates).Error
}

// DeleteArtwork removes the row. Asset cleanup is the caller's concern.
func DeleteArtwork(id string) error {
	result := database.GetDB().Where("id = ?", id).Delete(&Artwork{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
