package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kirana_stock/internal/models"
)

const WorkbookFileName = "inventory.xlsx"

var workbookHeaders = []string{
	"ID", "Item Name", "Supplier", "Vendor Cycle", "Next Order Day",
	"Target Stock", "Current Stock", "Order Quantity",
}

// buildWorkbook lays out one sheet with the given items in order. Urgent rows
// are highlighted the way the list view highlights them.
func buildWorkbook(items []models.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Inventory"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A8A"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	urgentStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#EF4444"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FEF2F2"}},
	})

	for i, h := range workbookHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	var totalOrder int
	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Supplier)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(item.VendorCycle))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(item.NextOrderDay))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.TargetStock)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.OrderQuantity())
		totalOrder += item.OrderQuantity()
		if item.IsUrgent() {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), urgentStyle)
		}
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d items", len(items)))
	f.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), totalOrder)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{16, 24, 22, 12, 14, 12, 13, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f, nil
}
