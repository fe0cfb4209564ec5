package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kirana_stock/internal/middleware"
)

// RegisterRoutes mounts the catalog API and, when saveHandler is non-nil, the
// save-inventory receiver.
func RegisterRoutes(router *gin.Engine, apiHandler *APIHandler, saveHandler *SaveHandler, saveTokenHash string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/items", apiHandler.ListItems)
		api.POST("/items", apiHandler.CreateItem)
		api.PATCH("/items/:id", apiHandler.UpdateItem)
		api.GET("/items/export", apiHandler.ExportCSV)
		api.GET("/items/export.xlsx", apiHandler.ExportXLSX)
		api.POST("/items/import", apiHandler.ImportCSV)
		api.POST("/items/save", apiHandler.SaveToDatabase)

		if saveHandler != nil {
			api.POST("/save-inventory", middleware.SaveToken(saveTokenHash), saveHandler.SaveInventory)
			api.GET("/saved-inventory", saveHandler.GetSavedInventory)
			api.GET("/saved-inventory/:id", saveHandler.GetSavedItem)
		}
	}
}
