package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
)

// Folder groups a creator's artworks. Deleting a folder detaches its
// artworks, it never deletes them.
type Folder struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `gorm:"type:uuid;not null;index" json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Creator  *User     `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Artworks []Artwork `gorm:"foreignKey:FolderID" json:"artworks,omitempty"`

	ArtworkCount int64 `gorm:"-" json:"artworkCount"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// LoadArtworkCount refreshes the derived member count.
func (f *Folder) LoadArtworkCount(db *gorm.DB) error {
	return db.Model(&Artwork{}).Where("folder_id = ?", f.ID).Count(&f.ArtworkCount).Error
}

// GetFolderByID retrieves a folder with its creator, optionally with its
// artworks newest-first, and always with a fresh member count.
func GetFolderByID(id string, withArtworks bool) (*Folder, error) {
	db := database.GetDB()
	query := db.Preload("Creator")
	if withArtworks {
		query = query.Preload("Artworks", func(db *gorm.DB) *gorm.DB {
			return db.Order("artworks.created_at DESC")
		})
	}
	var folder Folder
	if err := query.Where("id = ?", id).First(&folder).Error; err != nil {
		return nil, err
	}
	if err := folder.LoadArtworkCount(db); err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolders returns folders newest-first with creators and member counts.
// An empty creatorID lists every folder.
func ListFolders(creatorID string) ([]Folder, error) {
	db := database.GetDB()
	query := db.Preload("Creator")
	if creatorID != "" {
		query = query.Where("creator_id = ?", creatorID)
	}
	var folders []Folder
	if err := query.Order("created_at DESC").Find(&folders).Error; err != nil {
		return nil, err
	}
	for i := range folders {
		if err := folders[i].LoadArtworkCount(db); err != nil {
			return nil, err
		}
	}
	return folders, nil
}

// CreateFolder persists a new folder row.
func CreateFolder(folder *Folder) error {
	return database.GetDB().Create(folder).Error
}

// UpdateFolder applies a partial patch; unnamed columns are untouched.
func UpdateFolder(folder *Folder, updates map[string]interface{}) error {
	return database.GetDB().Model(folder).Updates(updates).Error
}

// DeleteFolder detaches member artworks and removes the folder in one
// transaction so no artwork is ever left pointing at a missing folder.
func DeleteFolder(id string) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Artwork{}).
			Where("folder_id = ?", id).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Folder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
