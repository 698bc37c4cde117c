package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
)

// User is an account on the portal. The admin and paused flags are mandatory
// columns; there is no fallback read path that defaults them.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	IsPaused  bool      `gorm:"not null;default:false" json:"isPaused"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Artworks []Artwork `gorm:"foreignKey:CreatorID" json:"artworks,omitempty"`
	Folders  []Folder  `gorm:"foreignKey:CreatorID" json:"folders,omitempty"`

	// Recomputed from live rows on read, never stored.
	ArtworkCount int64 `gorm:"-" json:"artworkCount"`
	FolderCount  int64 `gorm:"-" json:"folderCount"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// LoadCounts refreshes the derived artwork and folder counts.
func (u *User) LoadCounts(db *gorm.DB) error {
	if err := db.Model(&Artwork{}).Where("creator_id = ?", u.ID).Count(&u.ArtworkCount).Error; err != nil {
		return err
	}
	return db.Model(&Folder{}).Where("creator_id = ?", u.ID).Count(&u.FolderCount).Error
}

// GetUserByID retrieves a user record by its ID.
func GetUserByID(id string) (*User, error) {
	var user User
	if err := database.GetDB().Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user record by email.
func GetUserByEmail(email string) (*User, error) {
	var user User
	if err := database.GetDB().Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account newest-first with derived counts, for the
// moderation surface.
func ListUsers() ([]User, error) {
	db := database.GetDB()
	var users []User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		if err := users[i].LoadCounts(db); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// ListArtists returns users with at least one artwork, ordered by name.
func ListArtists() ([]User, error) {
	db := database.GetDB()
	var artists []User
	err := db.Where("id IN (?)", db.Model(&Artwork{}).Select("creator_id")).
		Order("name ASC").
		Find(&artists).Error
	if err != nil {
		return nil, err
	}
	for i := range artists {
		if err := artists[i].LoadCounts(db); err != nil {
			return nil, err
		}
	}
	return artists, nil
}

// GetArtistProfile loads a user with their folders (newest-first, each with
// its artwork count) and the user's own derived counts.
func GetArtistProfile(id string) (*User, error) {
	db := database.GetDB()
	var artist User
	err := db.Preload("Folders", func(db *gorm.DB) *gorm.DB {
		return db.Order("folders.created_at DESC")
	}).Where("id = ?", id).First(&artist).Error
	if err != nil {
		return nil, err
	}
	if err := artist.LoadCounts(db); err != nil {
		return nil, err
	}
	for i := range artist.Folders {
		if err := artist.Folders[i].LoadArtworkCount(db); err != nil {
			return nil, err
		}
	}
	return &artist, nil
}

// UpdateUserFlags applies a moderation patch (pause/admin flags) to a user.
func UpdateUserFlags(user *User, updates map[string]interface{}) error {
	return database.GetDB().Model(user).Updates(updates).Error
}

// DeleteUser removes the user and every artwork and folder they own in a
// single transaction. It returns the asset locators that backed the removed
// rows so the caller can clean them up best-effort after commit.
func DeleteUser(id string) ([]string, error) {
	var locators []string
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		var artworks []Artwork
		if err := tx.Where("creator_id = ?", id).Find(&artworks).Error; err != nil {
			return err
		}
		for _, a := range artworks {
			locators = append(locators, a.ImageURL)
		}
		if user.AvatarURL != "" {
			locators = append(locators, user.AvatarURL)
		}
		if err := tx.Where("creator_id = ?", id).Delete(&Artwork{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", id).Delete(&Folder{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return locators, nil
}
