package main

import (
	"fmt"
	"log"
	"time"

	"kirana_stock/internal/config"
	"kirana_stock/internal/database"
	"kirana_stock/internal/migrations"
	"kirana_stock/internal/models"
	"kirana_stock/internal/repository"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Recreating tables...")
	if err := migrations.Reset(db); err != nil {
		log.Fatal("Failed to recreate tables:", err)
	}

	// Seed a small sample inventory
	fmt.Println("Creating sample inventory...")
	now := time.Now().UTC()
	sample := []models.Item{
		{ID: now.UnixMilli(), ItemName: "Basmati Rice 5kg", Supplier: "Sharma Traders", TargetStock: 20, CurrentStock: 6, VendorCycle: models.Weekly, NextOrderDay: models.Monday},
		{ID: now.UnixMilli() + 1, ItemName: "Sunflower Oil 1L", Supplier: "Gupta Wholesale", TargetStock: 24, CurrentStock: 24, VendorCycle: models.BiWeekly, NextOrderDay: models.Wednesday},
		{ID: now.UnixMilli() + 2, ItemName: "Toor Dal 1kg", Supplier: "Sharma Traders", TargetStock: 15, CurrentStock: 3, VendorCycle: models.Weekly, NextOrderDay: models.Friday},
	}

	rows := make([]models.SavedItem, 0, len(sample))
	for _, item := range sample {
		rows = append(rows, models.NewSavedItem(item, now))
	}

	inventoryRepo := repository.NewInventoryRepository(db)
	if err := inventoryRepo.ReplaceAll(rows); err != nil {
		log.Fatal("Failed to create sample inventory:", err)
	}

	fmt.Printf("Database initialized with %d sample items\n", len(rows))
}
