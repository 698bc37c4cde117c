package migrations

import (
	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// Migrate creates or updates the schema. It fails hard: the admin and paused
// columns are mandatory and there is no silent-default fallback for them.
func Migrate() error {
	db := database.GetDB()

	return db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Artwork{},
	)
}
