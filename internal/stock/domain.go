// Package stock is the admin surface for warehouse inventory. Quantity moves
// go through dedicated increase/decrease operations so the backend can keep
// levels non-negative.
package stock

// Item mirrors the backend warehouse row. Items optionally belong to an
// extra service, which consumes them when booked.
type Item struct {
	ID        int64  `json:"urun_id"`
	ServiceID int64  `json:"hizmet_id,omitempty"`
	Name      string `json:"urun_adi"`
	Quantity  int    `json:"stok_adedi"`
	UpdatedAt string `json:"son_guncelleme,omitempty"`
}

// ItemInput carries create/update fields.
type ItemInput struct {
	ServiceID int64  `json:"hizmet_id,omitempty"`
	Name      string `json:"urun_adi" validate:"required"`
	Quantity  int    `json:"stok_adedi" validate:"gte=0"`
}

// Adjustment moves a quantity in or out of the warehouse.
type Adjustment struct {
	ItemID   int64 `json:"urun_id" validate:"required,gt=0"`
	Quantity int   `json:"miktar" validate:"required,gt=0"`
}

// AdjustmentResult is the backend's reply to a quantity move.
type AdjustmentResult struct {
	Message string `json:"message"`
	Item    Item   `json:"stok"`
}

// ListFilter narrows stock listings.
type ListFilter struct {
	Search    string
	ServiceID int64
}
