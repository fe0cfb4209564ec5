package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kirana_stock/internal/models"
)

// Filter narrows the displayed items. An empty field means "All".
type Filter struct {
	NextOrderDay models.OrderDay    `form:"nextOrderDay" json:"nextOrderDay"`
	VendorCycle  models.VendorCycle `form:"vendorCycle" json:"vendorCycle"`
}

func (f Filter) Matches(item models.Item) bool {
	if f.NextOrderDay != "" && item.NextOrderDay != f.NextOrderDay {
		return false
	}
	if f.VendorCycle != "" && item.VendorCycle != f.VendorCycle {
		return false
	}
	return true
}

// Row is an item together with its derived reorder fields, as rendered in the list.
type Row struct {
	models.Item
	OrderQuantity int  `json:"orderQuantity"`
	IsUrgent      bool `json:"isUrgent"`
}

// Apply returns the items passing the filter, urgent items first and then by name.
// The input slice is left untouched.
func Apply(items []models.Item, filter Filter) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	Sort(out)
	return out
}

// Sort orders items in place. Urgency is a bucket, not a magnitude: two urgent
// items are compared by name only.
func Sort(items []models.Item) {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		ui, uj := items[i].IsUrgent(), items[j].IsUrgent()
		if ui != uj {
			return ui
		}
		return col.CompareString(items[i].ItemName, items[j].ItemName) < 0
	})
}

func Rows(items []models.Item) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Row{
			Item:          item,
			OrderQuantity: item.OrderQuantity(),
			IsUrgent:      item.IsUrgent(),
		}
	}
	return rows
}
