// Package reservations is the admin surface for hotel bookings. The backend
// owns the records and the authoritative overlap check; this module carries
// the booking form rules: date ordering, person counts, price quoting and the
// status lifecycle.
package reservations

import (
	"fmt"
	"math"
	"time"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

// Reservation statuses as the backend stores them.
const (
	StatusPending   = "bekliyor"
	StatusActive    = "aktif"
	StatusCompleted = "tamamlandi"
	StatusCancelled = "iptal"
)

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

// MaxGuests caps a single room booking.
const MaxGuests = 6

// ValidStatus reports whether the value is one of the backend's states.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status accepts no further transitions.
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// CanTransition reports whether a booking may move from one status to the
// other. Resubmitting the current status is a no-op and always allowed.
// Cancellation is reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if Terminal(from) {
		return false
	}
	switch {
	case to == StatusCancelled:
		return true
	case from == StatusPending && to == StatusActive:
		return true
	case from == StatusActive && to == StatusCompleted:
		return true
	}
	return false
}

// Nights returns the chargeable night count for a stay, rounding partial
// days up. Non-positive spans yield 0.
func Nights(checkIn, checkOut time.Time) int {
	span := checkOut.Sub(checkIn)
	if span <= 0 {
		return 0
	}
	return int(math.Ceil(span.Hours() / 24))
}

// TotalPrice multiplies the nightly rate by the night count. A stay of zero
// nights prices at 0; callers treat that as an invalid draft, not an error.
func TotalPrice(nightlyRate float64, nights int) float64 {
	if nights <= 0 {
		return 0
	}
	return nightlyRate * float64(nights)
}

// ValidPersonCount enforces the room capacity rule: at least one adult,
// no negative counts, at most six guests in total.
func ValidPersonCount(adults, children int) bool {
	if adults < 1 || children < 0 {
		return false
	}
	return adults+children <= MaxGuests
}

// Reservation mirrors the backend booking record.
type Reservation struct {
	ID         int64   `json:"rezervasyon_id"`
	CustomerID int64   `json:"musteri_id"`
	RoomID     int64   `json:"oda_id"`
	CheckIn    string  `json:"giris_tarihi"`
	CheckOut   string  `json:"cikis_tarihi"`
	Adults     int     `json:"yetiskin_sayisi"`
	Children   int     `json:"cocuk_sayisi"`
	TotalPrice float64 `json:"toplam_ucret"`
	Status     string  `json:"rezervasyon_durumu"`
	CreatedAt  string  `json:"olusturulma_tarihi,omitempty"`
}

// ReservationInput carries create/update fields.
type ReservationInput struct {
	CustomerID int64  `json:"musteri_id" validate:"required,gt=0"`
	RoomID     int64  `json:"oda_id" validate:"required,gt=0"`
	CheckIn    string `json:"giris_tarihi" validate:"required"`
	CheckOut   string `json:"cikis_tarihi" validate:"required"`
	Adults     int    `json:"yetiskin_sayisi"`
	Children   int    `json:"cocuk_sayisi"`
	Status     string `json:"rezervasyon_durumu,omitempty"`
}

// Stay parses the draft dates and enforces ordering and capacity.
func (in ReservationInput) Stay() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(DateLayout, in.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: giriş tarihi YYYY-AA-GG biçiminde olmalıdır", httpx.ErrValidation)
	}
	checkOut, err = time.Parse(DateLayout, in.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: çıkış tarihi YYYY-AA-GG biçiminde olmalıdır", httpx.ErrValidation)
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: çıkış tarihi giriş tarihinden sonra olmalıdır", httpx.ErrValidation)
	}
	if !ValidPersonCount(in.Adults, in.Children) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: en az 1 yetişkin, en fazla %d kişi olmalıdır", httpx.ErrValidation, MaxGuests)
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: geçersiz rezervasyon durumu: %s", httpx.ErrValidation, in.Status)
	}
	return checkIn, checkOut, nil
}

// PriceQuote is the pre-submission price preview for a booking form.
type PriceQuote struct {
	RoomID      int64   `json:"oda_id"`
	CheckIn     string  `json:"giris_tarihi"`
	CheckOut    string  `json:"cikis_tarihi"`
	Nights      int     `json:"gece_sayisi"`
	NightlyRate float64 `json:"gecelik_fiyat"`
	Total       float64 `json:"toplam_ucret"`
	Valid       bool    `json:"gecerli"`
}

// Availability is the backend's answer to the overlap query.
type Availability struct {
	RoomID    int64  `json:"oda_id"`
	Available bool   `json:"musait"`
	CheckIn   string `json:"giris_tarihi,omitempty"`
	CheckOut  string `json:"cikis_tarihi,omitempty"`
}

// Review is the stay review attached to a completed booking.
type Review struct {
	ID            int64  `json:"degerlendirme_id"`
	ReservationID int64  `json:"rezervasyon_id"`
	Rating        int    `json:"puan"`
	Comment       string `json:"yorum,omitempty"`
}

// ReviewInput carries review create/update fields.
type ReviewInput struct {
	Rating  int    `json:"puan" validate:"required,min=1,max=5"`
	Comment string `json:"yorum,omitempty"`
}

// Options lists the selectable reservation statuses.
type Options struct {
	Statuses []string `json:"durumlar"`
}

// ListFilter narrows reservation listings.
type ListFilter struct {
	Status     string
	RoomID     int64
	CustomerID int64
}
