package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

const (
	dateLayout = "2006-01-02"

	reasonException = "unavailable on this date"
	reasonClosed    = "closed on selected date"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// parseDate accepts strictly YYYY-MM-DD naming a real calendar date.
// time.Parse rejects out-of-range days, so 2023-02-29 fails while 2024-02-29 passes.
func parseDate(raw string) (time.Time, error) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", raw)
	}
	return time.Parse(dateLayout, raw)
}

// parseClock converts HH:mm into minutes after midnight.
func parseClock(raw string) (int, error) {
	if !clockPattern.MatchString(raw) {
		return 0, fmt.Errorf("time %q is not HH:mm", raw)
	}
	hours := int(raw[0]-'0')*10 + int(raw[1]-'0')
	minutes := int(raw[3]-'0')*10 + int(raw[4]-'0')
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type slotSpan struct {
	start int
	end   int
}

type windowPlan struct {
	start int
	end   int
	slots []slotSpan
}

// dayPlan is the slot layout of a court on one civil date before reservations are applied.
type dayPlan struct {
	blackout bool
	windows  []windowPlan
}

func (p dayPlan) closed() bool {
	return !p.blackout && len(p.windows) == 0
}

// planDay lays out the slots of every window matching date's weekday.
// Weekdays come from the civil date alone; slot times are court-local wall-clock values.
func planDay(court *models.Court, date time.Time) dayPlan {
	if inException(court, date) {
		return dayPlan{blackout: true}
	}

	var plan dayPlan
	for _, w := range court.WindowsOn(date.Weekday()) {
		start, err := parseClock(w.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(w.EndTime)
		if err != nil || end <= start {
			continue
		}
		plan.windows = append(plan.windows, windowPlan{
			start: start,
			end:   end,
			slots: windowSlots(start, end, court.BookingSlotMinutes, court.BufferMinutes),
		})
	}
	return plan
}

// windowSlots steps by length+buffer and never emits a slot ending past end.
func windowSlots(start, end, length, buffer int) []slotSpan {
	if length <= 0 {
		return nil
	}
	if buffer < 0 {
		buffer = 0
	}
	var spans []slotSpan
	for s := start; s+length <= end; s += length + buffer {
		spans = append(spans, slotSpan{start: s, end: s + length})
	}
	return spans
}

func inException(court *models.Court, date time.Time) bool {
	for _, ex := range court.Exceptions {
		from, err := time.Parse(dateLayout, ex.StartDate)
		if err != nil {
			continue
		}
		to, err := time.Parse(dateLayout, ex.EndDate)
		if err != nil {
			continue
		}
		if !date.Before(from) && !date.After(to) {
			return true
		}
	}
	return false
}

// ComputeAvailability lists the court's slots on dateISO, marking those whose start time is
// already reserved. It is pure: reservations must be supplied by the caller.
func ComputeAvailability(court *models.Court, dateISO string, reservations []models.Reservation) (*models.Availability, error) {
	date, err := parseDate(dateISO)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidDateFormat, "")
	}

	result := &models.Availability{
		CourtID:  court.ID,
		Date:     dateISO,
		Timezone: court.Timezone,
		Slots:    []models.Slot{},
	}

	plan := planDay(court, date)
	switch {
	case plan.blackout:
		result.Reason = reasonException
		return result, nil
	case plan.closed():
		result.Reason = reasonClosed
		return result, nil
	}

	taken := make(map[string]struct{}, len(reservations))
	for _, r := range reservations {
		if r.CourtID != court.ID || r.Date != dateISO {
			continue
		}
		taken[r.StartTime] = struct{}{}
	}

	for _, w := range plan.windows {
		for _, span := range w.slots {
			start := formatClock(span.start)
			_, reserved := taken[start]
			result.Slots = append(result.Slots, models.Slot{
				StartTime:   start,
				EndTime:     formatClock(span.end),
				IsAvailable: !reserved,
			})
		}
	}
	return result, nil
}
