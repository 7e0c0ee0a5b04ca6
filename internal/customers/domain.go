// Package customers is the admin surface for hotel guests. Records live in
// the hotel backend; this module wraps its REST resource and adds listing
// filters plus the expense and review subresources.
package customers

// Gender values the backend accepts.
const (
	GenderMale        = "Erkek"
	GenderFemale      = "Kadın"
	GenderUnspecified = "Belirtilmemiş"
)

// ValidGender reports whether the value is one of the backend's choices.
func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderUnspecified:
		return true
	}
	return false
}

// Customer mirrors the backend guest record.
type Customer struct {
	ID           int64  `json:"musteri_id"`
	FirstName    string `json:"ad"`
	LastName     string `json:"soyad"`
	NationalID   string `json:"tc_kimlik_no"`
	Phone        string `json:"telefon"`
	Email        string `json:"email,omitempty"`
	Gender       string `json:"cinsiyet"`
	Address      string `json:"adres,omitempty"`
	Notes        string `json:"ozel_notlar,omitempty"`
	RegisteredAt string `json:"kayit_tarihi,omitempty"`
}

// FullName joins first and last name for display and search.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerInput carries create/update fields.
type CustomerInput struct {
	FirstName  string `json:"ad" validate:"required"`
	LastName   string `json:"soyad" validate:"required"`
	NationalID string `json:"tc_kimlik_no" validate:"required,len=11,numeric"`
	Phone      string `json:"telefon" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Gender     string `json:"cinsiyet,omitempty"`
	Address    string `json:"adres,omitempty"`
	Notes      string `json:"ozel_notlar,omitempty"`
}

// Expense is one service charge booked against a guest's reservation.
type Expense struct {
	ID            int64   `json:"harcama_id"`
	ReservationID int64   `json:"rezervasyon_id"`
	ServiceID     int64   `json:"hizmet_id"`
	Quantity      int     `json:"adet"`
	TotalPrice    float64 `json:"toplam_fiyat"`
	BookedAt      string  `json:"islem_tarihi,omitempty"`
	ServiceName   string  `json:"hizmet_adi,omitempty"`
	UnitPrice     float64 `json:"birim_fiyat,omitempty"`
}

// ExpenseSummary is the expense subresource payload.
type ExpenseSummary struct {
	CustomerID int64     `json:"musteri_id"`
	Expenses   []Expense `json:"harcamalar"`
	Total      float64   `json:"toplam_harcama"`
}

// Review is one stay review left by the guest.
type Review struct {
	ID            int64  `json:"degerlendirme_id"`
	ReservationID int64  `json:"rezervasyon_id"`
	Rating        int    `json:"puan"`
	Comment       string `json:"yorum,omitempty"`
	CheckIn       string `json:"giris_tarihi,omitempty"`
	CheckOut      string `json:"cikis_tarihi,omitempty"`
}

// ReviewSummary is the review subresource payload.
type ReviewSummary struct {
	CustomerID int64    `json:"musteri_id"`
	Reviews    []Review `json:"degerlendirmeler"`
	Count      int      `json:"toplam_degerlendirme"`
	Average    *float64 `json:"ortalama_puan"`
}

// ListFilter narrows customer listings.
type ListFilter struct {
	Search string
	Gender string
}
