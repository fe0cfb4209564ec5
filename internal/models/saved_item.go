package models

import (
	"time"
)

// SavedItem is the server-side copy of an item written by the save-inventory endpoint.
type SavedItem struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ItemName     string    `json:"itemName" gorm:"not null"`
	Supplier     string    `json:"supplier" gorm:"not null"`
	TargetStock  int       `json:"targetStock" gorm:"not null;default:0"`
	CurrentStock int       `json:"currentStock" gorm:"not null;default:0"`
	VendorCycle  string    `json:"vendorCycle" gorm:"size:16;not null"`
	NextOrderDay string    `json:"nextOrderDay" gorm:"size:16;not null"`
	SavedAt      time.Time `json:"savedAt"`
}

func (SavedItem) TableName() string {
	return "saved_inventory_items"
}

func NewSavedItem(item Item, savedAt time.Time) SavedItem {
	return SavedItem{
		ID:           item.ID,
		ItemName:     item.ItemName,
		Supplier:     item.Supplier,
		TargetStock:  item.TargetStock,
		CurrentStock: item.CurrentStock,
		VendorCycle:  string(item.VendorCycle),
		NextOrderDay: string(item.NextOrderDay),
		SavedAt:      savedAt,
	}
}

func (s SavedItem) Item() Item {
	return Item{
		ID:           s.ID,
		ItemName:     s.ItemName,
		Supplier:     s.Supplier,
		TargetStock:  s.TargetStock,
		CurrentStock: s.CurrentStock,
		VendorCycle:  VendorCycle(s.VendorCycle),
		NextOrderDay: OrderDay(s.NextOrderDay),
	}
}
