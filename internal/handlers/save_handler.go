package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kirana_stock/internal/models"
	"kirana_stock/internal/repository"
	"kirana_stock/internal/services"
)

// SaveHandler is the receiving side of the remote save.
type SaveHandler struct {
	saveService services.SaveService
}

func NewSaveHandler(saveService services.SaveService) *SaveHandler {
	return &SaveHandler{saveService: saveService}
}

// SaveInventory POST /api/save-inventory
func (h *SaveHandler) SaveInventory(c *gin.Context) {
	var items []models.Item
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}

	saved, err := h.saveService.SaveInventory(items)
	if err != nil {
		var invalid *services.InvalidItemError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error":   "Invalid item",
				"index":   invalid.Index,
				"id":      invalid.ID,
				"fields":  invalid.Fields.Messages(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"saved":   saved,
		"message": "Inventory saved",
	})
}

// GetSavedInventory GET /api/saved-inventory
func (h *SaveHandler) GetSavedInventory(c *gin.Context) {
	items, err := h.saveService.GetSavedInventory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetSavedItem GET /api/saved-inventory/:id
func (h *SaveHandler) GetSavedItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.saveService.GetSavedItem(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
