// Package reports proxies the backend's revenue reporting views and keeps
// periodic snapshots of them in Postgres, so month-end numbers survive even
// after the backend views roll forward.
package reports

import (
	"encoding/json"
	"time"

	"github.com/marina-hms/marina/internal/shared"
)

// Snapshot kinds stored in report_snapshots.
const (
	KindMonthly      = "monthly"
	KindReservations = "reservations"
)

// MonthlyRow is one line of the backend's monthly revenue view. Field names
// mirror the view's columns, casing included.
type MonthlyRow struct {
	Period       string  `json:"Donem"`
	TotalRevenue float64 `json:"Toplam_Kazanc"`
	TxCount      int     `json:"Islem_Sayisi"`
	Method       string  `json:"odeme_turu,omitempty"`
}

// ReservationRow is one line of the backend's reservation detail view.
type ReservationRow struct {
	ReservationID int64   `json:"rezervasyon_id"`
	CustomerID    int64   `json:"musteri_id"`
	CustomerName  string  `json:"musteri_adi,omitempty"`
	RoomID        int64   `json:"oda_id"`
	RoomNumber    string  `json:"oda_no,omitempty"`
	CheckIn       string  `json:"giris_tarihi"`
	CheckOut      string  `json:"cikis_tarihi"`
	TotalPrice    float64 `json:"toplam_ucret"`
	Status        string  `json:"rezervasyon_durumu,omitempty"`
}

// SnapshotPage is one page of snapshot history.
type SnapshotPage struct {
	Items      []Snapshot        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// Snapshot is a stored copy of a report at a point in time.
type Snapshot struct {
	ID      int64           `json:"snapshot_id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	TakenAt time.Time       `json:"taken_at"`
}
