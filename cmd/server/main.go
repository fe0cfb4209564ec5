package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kirana_stock/internal/catalog"
	"kirana_stock/internal/config"
	"kirana_stock/internal/database"
	"kirana_stock/internal/handlers"
	"kirana_stock/internal/logging"
	"kirana_stock/internal/middleware"
	"kirana_stock/internal/redis"
	"kirana_stock/internal/repository"
	"kirana_stock/internal/services"
	"kirana_stock/internal/snapshot"
	"kirana_stock/pkg/remotesave"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Local snapshot: restore once, then rewrite on every change
	slot, closeSlot := openSnapshotSlot(cfg, logger)
	defer closeSlot()

	persister := snapshot.NewPersister(slot, logger, 5*time.Second)
	store := catalog.NewStore(catalog.NewIDGenerator(), persister.Restore(context.Background()))
	store.OnChange(persister.Persist)

	remoteClient := remotesave.NewClient(cfg.RemoteSaveURL, cfg.RemoteSaveToken, cfg.RemoteSaveTimeout)
	inventoryService := services.NewInventoryService(store, remoteClient, logger)
	apiHandler := handlers.NewAPIHandler(inventoryService)

	// The save-inventory receiver only runs when a database is configured
	var saveHandler *handlers.SaveHandler
	if cfg.DatabaseEnabled {
		db, err := database.Initialize(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		logger.Info("Database connected and migrated successfully")
		inventoryRepo := repository.NewInventoryRepository(db)
		saveHandler = handlers.NewSaveHandler(services.NewSaveService(inventoryRepo))
	} else {
		logger.Info("Database disabled, save-inventory endpoint not mounted")
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	handlers.RegisterRoutes(router, apiHandler, saveHandler, cfg.SaveTokenHash)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort), zap.Int("items", store.Len()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openSnapshotSlot prefers redis, then a local file, then process memory.
func openSnapshotSlot(cfg *config.Config, logger *zap.Logger) (snapshot.Slot, func()) {
	if cfg.RedisEnabled {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err == nil {
			logger.Info("Using Redis for the inventory snapshot", zap.String("key", cfg.SnapshotKey))
			return redisClient.Slot(cfg.SnapshotKey), func() { redisClient.Close() }
		}
		logger.Warn("Redis unavailable, falling back", zap.Error(err))
	}

	if cfg.SnapshotFile != "" {
		logger.Info("Using a local file for the inventory snapshot", zap.String("path", cfg.SnapshotFile))
		return snapshot.NewFileSlot(cfg.SnapshotFile), func() {}
	}

	logger.Warn("Inventory snapshot kept in memory only; it will not survive a restart")
	return snapshot.NewMemorySlot(), func() {}
}
