package dto

import "github.com/ahmedbr1/zapvent-courts/internal/models"

// ReservationRequest is the body of POST /courts/{courtId}/reservations.
// EndTime is optional and defaults to StartTime plus the court slot length.
type ReservationRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

// ReservationResponse wraps the created reservation.
type ReservationResponse struct {
	Reservation models.Reservation `json:"reservation"`
}

// ReservationList is returned by the reservation listings.
type ReservationList struct {
	Reservations []models.Reservation `json:"reservations"`
}

// DaySheetRequest selects the court day to export.
type DaySheetRequest struct {
	CourtID string
	Date    string
	Format  string
}

// DaySheet is a rendered export ready to stream.
type DaySheet struct {
	Filename    string
	ContentType string
	Body        []byte
}
