// Package services is the admin surface for extra hotel services (spa,
// laundry, minibar) and the orders guests place for them. Orders are charged
// against a reservation and may consume warehouse stock.
package services

// Order statuses as the backend tracks service fulfilment.
const (
	OrderPending   = "beklemede"
	OrderCompleted = "tamamlandi"
	OrderCancelled = "iptal"
)

// ValidOrderStatus reports whether the value is a known fulfilment state.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Service mirrors the backend extra-service record.
type Service struct {
	ID        int64   `json:"hizmet_id"`
	Name      string  `json:"hizmet_adi"`
	UnitPrice float64 `json:"birim_fiyat"`
	Category  string  `json:"kategori,omitempty"`
}

// ServiceInput carries create/update fields.
type ServiceInput struct {
	Name      string  `json:"hizmet_adi" validate:"required"`
	UnitPrice float64 `json:"birim_fiyat" validate:"gt=0"`
	Category  string  `json:"kategori,omitempty"`
}

// Order is a service charge placed against a reservation.
type Order struct {
	ID            int64   `json:"harcama_id"`
	ReservationID int64   `json:"rezervasyon_id"`
	ServiceID     int64   `json:"hizmet_id"`
	Quantity      int     `json:"adet"`
	TotalPrice    float64 `json:"toplam_fiyat"`
	Status        string  `json:"durum,omitempty"`
	BookedAt      string  `json:"islem_tarihi,omitempty"`
}

// OrderInput carries order create fields.
type OrderInput struct {
	ReservationID int64 `json:"rezervasyon_id" validate:"required,gt=0"`
	ServiceID     int64 `json:"hizmet_id" validate:"required,gt=0"`
	Quantity      int   `json:"adet" validate:"required,gt=0"`
}

// StockLink ties a service to the warehouse items it consumes.
type StockLink struct {
	ServiceID int64  `json:"hizmet_id"`
	ItemID    int64  `json:"urun_id"`
	ItemName  string `json:"urun_adi"`
	Quantity  int    `json:"stok_adedi"`
}

// ListFilter narrows service listings.
type ListFilter struct {
	Search   string
	Category string
}
