// Package dashboard aggregates the hotel's day view: occupancy stats, the
// active reservation list and today's check-in/check-out events. The three
// backend calls are independent, so the combined summary fans them out
// concurrently.
package dashboard

// Stats is the headline occupancy block.
type Stats struct {
	TotalReservations int     `json:"total_reservations"`
	OccupiedRooms     int     `json:"occupied_rooms"`
	AvailableRooms    int     `json:"available_rooms"`
	TodaysCheckins    int     `json:"todays_checkins"`
	TotalCustomers    int     `json:"total_customers"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	TotalRooms        int     `json:"total_rooms"`
}

// ActiveReservation is one row of the pending/active booking list.
type ActiveReservation struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"name"`
	Room         string  `json:"room"`
	CheckinDate  string  `json:"checkin_date"`
	CheckoutDate string  `json:"checkout_date"`
	Status       string  `json:"status"`
	TotalPrice   float64 `json:"total_price"`
}

// Event is a single check-in or check-out happening today.
type Event struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Room string `json:"room"`
	Time string `json:"time"`
}

// Summary packs all three dashboard blocks into one payload for the
// landing page.
type Summary struct {
	Stats              Stats               `json:"stats"`
	ActiveReservations []ActiveReservation `json:"active_reservations"`
	TodaysEvents       []Event             `json:"todays_events"`
}

// envelope matches the backend's {success, data} wrapper on dashboard
// endpoints.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}
