// Package rooms is the admin surface for hotel rooms. All state lives in the
// hotel backend; this module wraps its REST resource, filters listings and
// guards mutations.
package rooms

// Room statuses as the backend stores them.
const (
	StatusVacant       = "Boş"
	StatusOccupied     = "Dolu"
	StatusRenovation   = "Tadilat"
	StatusHousekeeping = "Temizlikte"
	StatusReserved     = "Rezerve"
)

// ValidStatus reports whether the value is one of the backend's room states.
func ValidStatus(status string) bool {
	switch status {
	case StatusVacant, StatusOccupied, StatusRenovation, StatusHousekeeping, StatusReserved:
		return true
	}
	return false
}

// Room mirrors the backend room record. JSON tags follow the backend wire
// contract.
type Room struct {
	ID           int64   `json:"oda_id"`
	Number       string  `json:"oda_no"`
	Type         string  `json:"tip"`
	NightlyRate  float64 `json:"fiyat"`
	Status       string  `json:"durum"`
	View         string  `json:"manzara,omitempty"`
	SquareMeters int     `json:"metrekare,omitempty"`
	CreatedAt    string  `json:"olusturulma_tarihi,omitempty"`
}

// RoomInput carries create/update fields.
type RoomInput struct {
	Number       string  `json:"oda_no" validate:"required"`
	Type         string  `json:"tip" validate:"required"`
	NightlyRate  float64 `json:"fiyat" validate:"gt=0"`
	Status       string  `json:"durum,omitempty"`
	View         string  `json:"manzara,omitempty"`
	SquareMeters int     `json:"metrekare,omitempty" validate:"gte=0"`
}

// Options lists the selectable room types and statuses.
type Options struct {
	Types    []string `json:"tipler"`
	Statuses []string `json:"durumlar"`
}

// Feature is a room amenity row.
type Feature struct {
	ID   int64  `json:"ozellik_id"`
	Name string `json:"ozellik_adi"`
}

// Image is a room photo reference.
type Image struct {
	ID  int64  `json:"resim_id"`
	URL string `json:"url"`
}

// ListFilter narrows room listings.
type ListFilter struct {
	Search string
	Status string
}
