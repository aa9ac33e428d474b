package models

import "time"

// StudentSnapshot is copied from the user when a reservation is created and never re-read.
type StudentSnapshot struct {
	StudentName  string `db:"student_name" json:"studentName"`
	StudentGucID string `db:"student_guc_id" json:"studentGucId"`
}

// Reservation is an accepted, immutable booking of one slot.
type Reservation struct {
	ID        string `db:"id" json:"id"`
	CourtID   string `db:"court_id" json:"courtId"`
	UserID    string `db:"user_id" json:"-"`
	Date      string `db:"reservation_date" json:"date"`
	StartTime string `db:"start_time" json:"startTime"`
	EndTime   string `db:"end_time" json:"endTime"`
	StudentSnapshot
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Slot is a bookable [StartTime, EndTime) interval on a given date.
type Slot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// Availability is the computed slot list for one court and date.
// Reason is set only when Slots is empty because of an exception or a closed weekday.
type Availability struct {
	CourtID  string `json:"courtId"`
	Date     string `json:"date"`
	Timezone string `json:"timezone,omitempty"`
	Slots    []Slot `json:"slots"`
	Reason   string `json:"reason,omitempty"`
}
