package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CourtType enumerates the sports a court is set up for.
type CourtType string

const (
	CourtTennis     CourtType = "TENNIS"
	CourtFootball   CourtType = "FOOTBALL"
	CourtBasketball CourtType = "BASKETBALL"
	CourtPadel      CourtType = "PADEL"
	CourtVolleyball CourtType = "VOLLEYBALL"
	CourtSquash     CourtType = "SQUASH"
)

// CourtStatus marks whether a court is in service.
type CourtStatus string

const (
	CourtActive      CourtStatus = "ACTIVE"
	CourtMaintenance CourtStatus = "MAINTENANCE"
)

// OpeningWindow is a recurring weekly interval [StartTime, EndTime) on Weekday (0 = Sunday).
type OpeningWindow struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CourtException blacks out every date in [StartDate, EndDate], both inclusive.
type CourtException struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// OpeningHours is stored as a JSONB array. Several windows per weekday are allowed.
type OpeningHours []OpeningWindow

// CourtExceptions is stored as a JSONB array.
type CourtExceptions []CourtException

// Court is the read-mostly configuration for a bookable court.
type Court struct {
	ID                 string          `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	Type               CourtType       `db:"court_type" json:"type"`
	Venue              string          `db:"venue" json:"venue"`
	Timezone           string          `db:"timezone" json:"timezone"`
	Surface            *string         `db:"surface" json:"surface,omitempty"`
	Indoor             *bool           `db:"indoor" json:"indoor,omitempty"`
	Lights             *bool           `db:"lights" json:"lights,omitempty"`
	PricePerHour       *float64        `db:"price_per_hour" json:"pricePerHour,omitempty"`
	Capacity           *int            `db:"capacity" json:"capacity,omitempty"`
	BookingSlotMinutes int             `db:"booking_slot_minutes" json:"bookingSlotMinutes"`
	BufferMinutes      int             `db:"buffer_minutes" json:"bufferMinutes"`
	Status             CourtStatus     `db:"status" json:"status"`
	OpeningHours       OpeningHours    `db:"opening_hours" json:"openingHours"`
	Exceptions         CourtExceptions `db:"exceptions" json:"exceptions"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}

// WindowsOn returns the opening windows for weekday in configuration order.
func (c *Court) WindowsOn(weekday time.Weekday) []OpeningWindow {
	var windows []OpeningWindow
	for _, w := range c.OpeningHours {
		if w.Weekday == int(weekday) {
			windows = append(windows, w)
		}
	}
	return windows
}

// CourtFilter narrows court listings.
type CourtFilter struct {
	Type     CourtType
	Status   CourtStatus
	Page     int
	PageSize int
}

// Value implements driver.Valuer.
func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *OpeningHours) Scan(src interface{}) error {
	return scanJSONArray(src, h)
}

// Value implements driver.Valuer.
func (e CourtExceptions) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner.
func (e *CourtExceptions) Scan(src interface{}) error {
	return scanJSONArray(src, e)
}

func scanJSONArray(src interface{}, dest interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
