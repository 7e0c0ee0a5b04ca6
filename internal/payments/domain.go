// Package payments is the admin surface for reservation payments.
package payments

// Payment methods the backend accepts.
const (
	MethodCash       = "Nakit"
	MethodCreditCard = "Kredi Kartı"
	MethodTransfer   = "Havale"
	MethodVirtualPOS = "Sanal Pos"
)

// ValidMethod reports whether the value is one of the backend's methods.
func ValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodCreditCard, MethodTransfer, MethodVirtualPOS:
		return true
	}
	return false
}

// Payment mirrors the backend payment record.
type Payment struct {
	ID            int64   `json:"odeme_id"`
	ReservationID int64   `json:"rezervasyon_id"`
	Amount        float64 `json:"odenen_tutar"`
	Method        string  `json:"odeme_turu"`
	PaidAt        string  `json:"odeme_tarihi,omitempty"`
}

// PaymentInput carries create/update fields.
type PaymentInput struct {
	ReservationID int64   `json:"rezervasyon_id" validate:"required,gt=0"`
	Amount        float64 `json:"odenen_tutar" validate:"required,gt=0"`
	Method        string  `json:"odeme_turu" validate:"required"`
}

// ListFilter narrows payment listings.
type ListFilter struct {
	Method        string
	ReservationID int64
}
