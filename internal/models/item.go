package models

// Item is one stocked product line tracked by the shop.
type Item struct {
	ID           int64       `json:"id" validate:"gt=0"`
	ItemName     string      `json:"itemName" validate:"notblank"`
	Supplier     string      `json:"supplier" validate:"notblank"`
	TargetStock  int         `json:"targetStock" validate:"gte=0"`
	CurrentStock int         `json:"currentStock" validate:"gte=0"`
	VendorCycle  VendorCycle `json:"vendorCycle" validate:"oneof=Weekly Bi-Weekly"`
	NextOrderDay OrderDay    `json:"nextOrderDay" validate:"oneof=Monday Tuesday Wednesday Thursday Friday"`
}

// ItemInput is a candidate item coming from the entry form, before an id is assigned.
type ItemInput struct {
	ItemName     string      `json:"itemName" validate:"notblank"`
	Supplier     string      `json:"supplier" validate:"notblank"`
	TargetStock  int         `json:"targetStock" validate:"gte=0"`
	CurrentStock int         `json:"currentStock" validate:"gte=0"`
	VendorCycle  VendorCycle `json:"vendorCycle" validate:"oneof=Weekly Bi-Weekly"`
	NextOrderDay OrderDay    `json:"nextOrderDay" validate:"oneof=Monday Tuesday Wednesday Thursday Friday"`
}

// ItemPatch holds the fields to overwrite on an existing item. Nil fields are left alone.
type ItemPatch struct {
	ID           *int64       `json:"id,omitempty"`
	ItemName     *string      `json:"itemName,omitempty"`
	Supplier     *string      `json:"supplier,omitempty"`
	TargetStock  *int         `json:"targetStock,omitempty"`
	CurrentStock *int         `json:"currentStock,omitempty"`
	VendorCycle  *VendorCycle `json:"vendorCycle,omitempty"`
	NextOrderDay *OrderDay    `json:"nextOrderDay,omitempty"`
}

type VendorCycle string

const (
	Weekly   VendorCycle = "Weekly"
	BiWeekly VendorCycle = "Bi-Weekly"
)

// VendorCycles lists every accepted vendor cycle in display order.
var VendorCycles = []VendorCycle{Weekly, BiWeekly}

func (v VendorCycle) Valid() bool {
	for _, c := range VendorCycles {
		if v == c {
			return true
		}
	}
	return false
}

type OrderDay string

const (
	Monday    OrderDay = "Monday"
	Tuesday   OrderDay = "Tuesday"
	Wednesday OrderDay = "Wednesday"
	Thursday  OrderDay = "Thursday"
	Friday    OrderDay = "Friday"
)

// OrderDays lists the weekdays an order can be placed on.
var OrderDays = []OrderDay{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d OrderDay) Valid() bool {
	for _, day := range OrderDays {
		if d == day {
			return true
		}
	}
	return false
}

// OrderQuantity returns how many units to reorder to get back to the par level.
func (i Item) OrderQuantity() int {
	if q := i.TargetStock - i.CurrentStock; q > 0 {
		return q
	}
	return 0
}

// IsUrgent reports whether the item is below its par level.
func (i Item) IsUrgent() bool {
	return i.OrderQuantity() > 0
}

// WithID builds the item an input describes under the given id.
func (in ItemInput) WithID(id int64) Item {
	return Item{
		ID:           id,
		ItemName:     in.ItemName,
		Supplier:     in.Supplier,
		TargetStock:  in.TargetStock,
		CurrentStock: in.CurrentStock,
		VendorCycle:  in.VendorCycle,
		NextOrderDay: in.NextOrderDay,
	}
}
