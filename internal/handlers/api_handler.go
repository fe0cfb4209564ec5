package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kirana_stock/internal/catalog"
	"kirana_stock/internal/csvcodec"
	"kirana_stock/internal/models"
	"kirana_stock/internal/services"
	"kirana_stock/pkg/remotesave"
)

// maxImportSize bounds CSV uploads; a catalog of a few hundred rows is a few KB.
const maxImportSize = 5 << 20

type APIHandler struct {
	inventoryService services.InventoryService
}

func NewAPIHandler(inventoryService services.InventoryService) *APIHandler {
	return &APIHandler{inventoryService: inventoryService}
}

// ListItems GET /api/items?nextOrderDay=&vendorCycle=
func (h *APIHandler) ListItems(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	rows := h.inventoryService.ListItems(filter)
	c.JSON(http.StatusOK, gin.H{
		"items": rows,
		"count": len(rows),
	})
}

// CreateItem POST /api/items
func (h *APIHandler) CreateItem(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.inventoryService.CreateItem(input)
	if err != nil {
		var fieldErrs catalog.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs.Messages()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":    item,
		"message": fmt.Sprintf("Item %q added successfully!", item.ItemName),
	})
}

// UpdateItem PATCH /api/items/:id
// An unknown id is not an error; the response just reports updated=false.
func (h *APIHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, ok := h.inventoryService.UpdateItem(id, patch)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"id": id, "updated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "updated": true, "item": item})
}

// ExportCSV GET /api/items/export
func (h *APIHandler) ExportCSV(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+csvcodec.FileName+"\"")
	c.Data(http.StatusOK, "text/csv", []byte(h.inventoryService.ExportCSV(filter)))
}

// ExportXLSX GET /api/items/export.xlsx
func (h *APIHandler) ExportXLSX(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	f, err := h.inventoryService.ExportXLSX(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+services.WorkbookFileName+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	// Part of the workbook may already be on the wire; record the failure for
	// the request log instead of appending a JSON body.
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(fmt.Errorf("write excel: %w", err))
	}
}

// ImportCSV POST /api/items/import
// Accepts a multipart "file" field or, for any other content type, the CSV as the raw request body.
func (h *APIHandler) ImportCSV(c *gin.Context) {
	text, err := readImport(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.inventoryService.ImportCSV(text)
	switch {
	case errors.Is(err, csvcodec.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV format"})
		return
	case errors.Is(err, csvcodec.ErrMissingHeaders):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers", "detail": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": res.Accepted,
		"skipped":  res.Skipped,
		"message":  fmt.Sprintf("Imported %d items", res.Accepted),
	})
}

// SaveToDatabase POST /api/items/save
func (h *APIHandler) SaveToDatabase(c *gin.Context) {
	resp, err := h.inventoryService.SaveToRemote(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": saveFailureMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"saved":   resp.Saved,
		"message": "Data saved to database successfully!",
	})
}

func saveFailureMessage(err error) string {
	var statusErr *remotesave.StatusError
	if errors.As(err, &statusErr) {
		return "Failed to save data to database."
	}
	return "Error saving to database: " + err.Error()
}

func bindFilter(c *gin.Context) (catalog.Filter, bool) {
	var filter catalog.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return filter, false
	}
	if filter.NextOrderDay != "" && !filter.NextOrderDay.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextOrderDay filter"})
		return filter, false
	}
	if filter.VendorCycle != "" && !filter.VendorCycle.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendorCycle filter"})
		return filter, false
	}
	return filter, true
}

func readImport(c *gin.Context) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	// Only multipart bodies go through form parsing, which would otherwise
	// consume a urlencoded body before it could be read as CSV.
	if c.ContentType() == "multipart/form-data" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("missing upload field \"file\": %w", err)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	return string(data), nil
}
