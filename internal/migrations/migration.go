package migrations

import (
	"gorm.io/gorm"

	"kirana_stock/internal/models"
)

// Tables lists every model owned by the save-inventory receiver.
func Tables() []interface{} {
	return []interface{}{
		&models.SavedItem{},
	}
}

// RunMigrations creates or updates the receiver's tables. Existing rows are kept.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(Tables()...)
}

// Reset drops and recreates the receiver's tables.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(Tables()...); err != nil {
		return err
	}
	return RunMigrations(db)
}
