package services

import (
	"fmt"
	"time"

	"kirana_stock/internal/catalog"
	"kirana_stock/internal/models"
	"kirana_stock/internal/repository"
)

// SaveService backs the save-inventory endpoint, keeping the last catalog a
// client pushed.
type SaveService interface {
	SaveInventory(items []models.Item) (int, error)
	GetSavedInventory() ([]models.SavedItem, error)
	GetSavedItem(id int64) (*models.SavedItem, error)
}

// InvalidItemError reports the first pushed item that fails validation.
type InvalidItemError struct {
	Index  int
	ID     int64
	Fields catalog.FieldErrors
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("item %d (id %d): %v", e.Index, e.ID, e.Fields)
}

type saveService struct {
	inventoryRepo repository.InventoryRepository
	now           func() time.Time
}

func NewSaveService(inventoryRepo repository.InventoryRepository) SaveService {
	return &saveService{inventoryRepo: inventoryRepo, now: time.Now}
}

func (s *saveService) SaveInventory(items []models.Item) (int, error) {
	savedAt := s.now().UTC()
	seen := make(map[int64]bool, len(items))
	rows := make([]models.SavedItem, 0, len(items))

	for i, item := range items {
		if errs := catalog.ValidateItem(item); errs != nil {
			return 0, &InvalidItemError{Index: i, ID: item.ID, Fields: errs}
		}
		if seen[item.ID] {
			return 0, &InvalidItemError{Index: i, ID: item.ID, Fields: catalog.FieldErrors{
				"id": {Field: "id", Code: catalog.InvalidValue, Message: "Id must be unique"},
			}}
		}
		seen[item.ID] = true
		rows = append(rows, models.NewSavedItem(item, savedAt))
	}

	if err := s.inventoryRepo.ReplaceAll(rows); err != nil {
		return 0, fmt.Errorf("failed to store inventory: %w", err)
	}

	// Report what the table holds now rather than what was sent.
	stored, err := s.inventoryRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count stored inventory: %w", err)
	}
	return int(stored), nil
}

func (s *saveService) GetSavedInventory() ([]models.SavedItem, error) {
	return s.inventoryRepo.GetAll()
}

// GetSavedItem returns repository.ErrNotFound for an id that was not in the last save.
func (s *saveService) GetSavedItem(id int64) (*models.SavedItem, error) {
	return s.inventoryRepo.GetByID(id)
}
