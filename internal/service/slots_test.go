package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

const (
	testCourtID = "6f1c2b7e-5d0a-4c56-9a43-0d6e1c1b2a10"
	testUserID  = "b3e1f0a2-8c4d-4e7f-9a1b-2c3d4e5f6a7b"
	monday      = "2024-12-16"
	tuesday     = "2024-12-17"
)

func mondayCourt(buffer int) *models.Court {
	return &models.Court{
		ID:                 testCourtID,
		Name:               "Court A",
		Type:               models.CourtTennis,
		Timezone:           "Africa/Cairo",
		BookingSlotMinutes: 60,
		BufferMinutes:      buffer,
		Status:             models.CourtActive,
		OpeningHours: models.OpeningHours{
			{Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
		},
	}
}

func TestComputeAvailabilityScenarioA(t *testing.T) {
	result, err := ComputeAvailability(mondayCourt(0), monday, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)
	assert.Equal(t, models.Slot{StartTime: "09:00", EndTime: "10:00", IsAvailable: true}, result.Slots[0])
	assert.Equal(t, models.Slot{StartTime: "16:00", EndTime: "17:00", IsAvailable: true}, result.Slots[7])
	assert.Empty(t, result.Reason)
	assert.Equal(t, "Africa/Cairo", result.Timezone)
}

func TestComputeAvailabilityScenarioBBuffer(t *testing.T) {
	result, err := ComputeAvailability(mondayCourt(15), monday, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 6)
	assert.Equal(t, "09:00", result.Slots[0].StartTime)
	assert.Equal(t, "10:15", result.Slots[1].StartTime)
	assert.Equal(t, "15:15", result.Slots[5].StartTime)
	assert.Equal(t, "16:15", result.Slots[5].EndTime)
}

func TestComputeAvailabilitySlotCountFormula(t *testing.T) {
	cases := []struct {
		window, length, buffer int
	}{
		{480, 60, 0}, {480, 60, 15}, {90, 60, 0}, {59, 60, 0}, {60, 60, 30},
		{600, 45, 10}, {120, 30, 5}, {30, 30, 0}, {1439, 90, 20},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("W%d_L%d_B%d", tc.window, tc.length, tc.buffer), func(t *testing.T) {
			court := &models.Court{
				ID:                 testCourtID,
				BookingSlotMinutes: tc.length,
				BufferMinutes:      tc.buffer,
				OpeningHours: models.OpeningHours{
					{Weekday: 1, StartTime: "00:00", EndTime: formatClock(tc.window)},
				},
			}
			expected := 0
			if tc.window >= tc.length {
				expected = (tc.window-tc.length)/(tc.length+tc.buffer) + 1
			}
			result, err := ComputeAvailability(court, monday, nil)
			require.NoError(t, err)
			assert.Len(t, result.Slots, expected)
		})
	}
}

func TestComputeAvailabilityExceptionBlackout(t *testing.T) {
	court := mondayCourt(0)
	court.Exceptions = models.CourtExceptions{{StartDate: "2024-12-14", EndDate: monday, Reason: "tournament"}}

	result, err := ComputeAvailability(court, monday, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.NotNil(t, result.Slots)
	assert.Equal(t, "unavailable on this date", result.Reason)

	court.Exceptions = models.CourtExceptions{{StartDate: monday, EndDate: monday}}
	result, err = ComputeAvailability(court, monday, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)

	court.Exceptions = models.CourtExceptions{{StartDate: "2024-12-17", EndDate: "2024-12-20"}}
	result, err = ComputeAvailability(court, monday, nil)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 8)
}

func TestComputeAvailabilityExceptionOverridesClosedWeekday(t *testing.T) {
	court := mondayCourt(0)
	court.Exceptions = models.CourtExceptions{{StartDate: tuesday, EndDate: tuesday}}

	result, err := ComputeAvailability(court, tuesday, nil)
	require.NoError(t, err)
	assert.Equal(t, "unavailable on this date", result.Reason)
}

func TestComputeAvailabilityClosedWeekday(t *testing.T) {
	result, err := ComputeAvailability(mondayCourt(0), tuesday, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, "closed on selected date", result.Reason)
}

func TestComputeAvailabilityWindowsAreNotBridged(t *testing.T) {
	court := mondayCourt(0)
	court.OpeningHours = models.OpeningHours{
		{Weekday: 1, StartTime: "09:00", EndTime: "10:30"},
		{Weekday: 1, StartTime: "11:00", EndTime: "12:00"},
		{Weekday: 1, StartTime: "13:00", EndTime: "13:45"},
	}

	result, err := ComputeAvailability(court, monday, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, "09:00", result.Slots[0].StartTime)
	assert.Equal(t, "11:00", result.Slots[1].StartTime)
}

func TestComputeAvailabilityPreservesWindowOrder(t *testing.T) {
	court := mondayCourt(0)
	court.OpeningHours = models.OpeningHours{
		{Weekday: 1, StartTime: "18:00", EndTime: "20:00"},
		{Weekday: 1, StartTime: "08:00", EndTime: "09:00"},
	}

	result, err := ComputeAvailability(court, monday, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 3)
	assert.Equal(t, []string{"18:00", "19:00", "08:00"}, []string{result.Slots[0].StartTime, result.Slots[1].StartTime, result.Slots[2].StartTime})
}

func TestComputeAvailabilityMarksReservedStartTimes(t *testing.T) {
	reservations := []models.Reservation{
		{CourtID: testCourtID, Date: monday, StartTime: "10:00", EndTime: "11:00"},
		{CourtID: testCourtID, Date: tuesday, StartTime: "12:00", EndTime: "13:00"},
		{CourtID: "another-court", Date: monday, StartTime: "13:00", EndTime: "14:00"},
	}

	result, err := ComputeAvailability(mondayCourt(0), monday, reservations)
	require.NoError(t, err)
	for _, slot := range result.Slots {
		assert.Equal(t, slot.StartTime != "10:00", slot.IsAvailable, slot.StartTime)
	}
}

func TestComputeAvailabilityIsIdempotent(t *testing.T) {
	reservations := []models.Reservation{{CourtID: testCourtID, Date: monday, StartTime: "09:00"}}
	first, err := ComputeAvailability(mondayCourt(15), monday, reservations)
	require.NoError(t, err)
	second, err := ComputeAvailability(mondayCourt(15), monday, reservations)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAvailabilityRejectsInvalidDates(t *testing.T) {
	for _, raw := range []string{"2023-02-29", "2024-13-01", "2024-12-1", "16-12-2024", "2024/12/16", "", "2024-12-16T00:00:00Z"} {
		_, err := ComputeAvailability(mondayCourt(0), raw, nil)
		require.Error(t, err, raw)
		assert.Equal(t, appErrors.ErrInvalidDateFormat.Code, appErrors.FromError(err).Code, raw)
	}
}

func TestComputeAvailabilityAcceptsLeapDay(t *testing.T) {
	court := mondayCourt(0)
	court.OpeningHours = models.OpeningHours{{Weekday: 4, StartTime: "09:00", EndTime: "11:00"}}

	result, err := ComputeAvailability(court, "2024-02-29", nil)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 2)
}

func TestParseClock(t *testing.T) {
	minutes, err := parseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	for _, raw := range []string{"24:00", "9:00", "09:60", "0900", "09:00:00", ""} {
		_, err := parseClock(raw)
		assert.Error(t, err, raw)
	}
}
