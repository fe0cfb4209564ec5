package repository

import (
	"errors"

	"kirana_stock/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type InventoryRepository interface {
	ReplaceAll(items []models.SavedItem) error
	GetAll() ([]models.SavedItem, error)
	GetByID(id int64) (*models.SavedItem, error)
	Count() (int64, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// ReplaceAll swaps the stored inventory for items in a single transaction.
func (r *inventoryRepository) ReplaceAll(items []models.SavedItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SavedItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
}

func (r *inventoryRepository) GetAll() ([]models.SavedItem, error) {
	var items []models.SavedItem
	err := r.db.Order("item_name").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) GetByID(id int64) (*models.SavedItem, error) {
	var item models.SavedItem
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.SavedItem{}).Count(&count).Error
	return count, err
}
