package dto

import "github.com/ahmedbr1/zapvent-courts/internal/models"

// OpeningWindowInput describes one weekly window in a create request.
type OpeningWindowInput struct {
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

// ExceptionInput describes an inclusive blackout range.
type ExceptionInput struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	Reason    string `json:"reason" validate:"max=200"`
}

// CreateCourtRequest is the admin payload for registering a court.
type CreateCourtRequest struct {
	Name               string               `json:"name" validate:"required,max=120"`
	Type               models.CourtType     `json:"type" validate:"required,oneof=TENNIS FOOTBALL BASKETBALL PADEL VOLLEYBALL SQUASH"`
	Venue              string               `json:"venue" validate:"required,max=200"`
	Timezone           string               `json:"timezone" validate:"omitempty,timezone"`
	Surface            *string              `json:"surface" validate:"omitempty,max=60"`
	Indoor             *bool                `json:"indoor"`
	Lights             *bool                `json:"lights"`
	PricePerHour       *float64             `json:"pricePerHour" validate:"omitempty,gte=0"`
	Capacity           *int                 `json:"capacity" validate:"omitempty,gt=0"`
	BookingSlotMinutes *int                 `json:"bookingSlotMinutes" validate:"omitempty,min=5,max=480"`
	BufferMinutes      *int                 `json:"bufferMinutes" validate:"omitempty,min=0,max=240"`
	Status             models.CourtStatus   `json:"status" validate:"omitempty,oneof=ACTIVE MAINTENANCE"`
	OpeningHours       []OpeningWindowInput `json:"openingHours" validate:"dive"`
	Exceptions         []ExceptionInput     `json:"exceptions" validate:"dive"`
}

// CourtQuery captures list filters.
type CourtQuery struct {
	Type     string
	Status   string
	Page     int
	PageSize int
}
