package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedbr1/zapvent-courts/internal/dto"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

func intPtr(v int) *int {
	return &v
}

func newCourtService(store *courtStoreStub) *CourtService {
	return NewCourtService(store, nil, nil, CourtDefaults{SlotMinutes: 60, Timezone: "Africa/Cairo"})
}

func validCourtRequest() dto.CreateCourtRequest {
	return dto.CreateCourtRequest{
		Name:  "Court A",
		Type:  models.CourtTennis,
		Venue: "Main campus",
		OpeningHours: []dto.OpeningWindowInput{
			{Weekday: intPtr(1), StartTime: "09:00", EndTime: "17:00"},
			{Weekday: intPtr(0), StartTime: "10:00", EndTime: "14:00"},
		},
		Exceptions: []dto.ExceptionInput{{StartDate: "2024-12-24", EndDate: "2024-12-26", Reason: "holiday"}},
	}
}

func TestCourtServiceGet(t *testing.T) {
	f := newBookingFixture(mondayCourt(0))
	svc := newCourtService(f.courts)

	court, err := svc.Get(context.Background(), testCourtID)
	require.NoError(t, err)
	assert.Equal(t, "Court A", court.Name)

	_, err = svc.Get(context.Background(), "nope")
	requireAppError(t, err, appErrors.ErrInvalidCourtID)

	_, err = svc.Get(context.Background(), "0b7a4f4e-9d2b-4c1e-8f3a-5e6d7c8b9a01")
	requireAppError(t, err, appErrors.ErrCourtNotFound)

	f.courts.err = errors.New("boom")
	_, err = svc.Get(context.Background(), testCourtID)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCourtServiceListNormalisesFilter(t *testing.T) {
	f := newBookingFixture(mondayCourt(0))
	svc := newCourtService(f.courts)

	courts, pagination, err := svc.List(context.Background(), dto.CourtQuery{Type: "tennis", PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, courts, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)

	courts, _, err = svc.List(context.Background(), dto.CourtQuery{Type: "PADEL"})
	require.NoError(t, err)
	assert.NotNil(t, courts)
	assert.Empty(t, courts)

	_, _, err = svc.List(context.Background(), dto.CourtQuery{Type: "CURLING"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourtServiceCreateAppliesDefaults(t *testing.T) {
	store := &courtStoreStub{courts: map[string]*models.Court{}}
	svc := newCourtService(store)

	court, err := svc.Create(context.Background(), validCourtRequest())
	require.NoError(t, err)
	assert.Equal(t, testCourtID, court.ID)
	assert.Equal(t, 60, court.BookingSlotMinutes)
	assert.Equal(t, 0, court.BufferMinutes)
	assert.Equal(t, "Africa/Cairo", court.Timezone)
	assert.Equal(t, models.CourtActive, court.Status)
	require.Len(t, court.OpeningHours, 2)
	assert.Equal(t, 0, court.OpeningHours[1].Weekday)
	require.Len(t, store.created, 1)
}

func TestCourtServiceCreateKeepsExplicitSlotSettings(t *testing.T) {
	store := &courtStoreStub{courts: map[string]*models.Court{}}
	svc := newCourtService(store)

	req := validCourtRequest()
	req.BookingSlotMinutes = intPtr(90)
	req.BufferMinutes = intPtr(10)
	req.Timezone = "UTC"

	court, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, court.BookingSlotMinutes)
	assert.Equal(t, 10, court.BufferMinutes)
	assert.Equal(t, "UTC", court.Timezone)
}

func TestCourtServiceCreateRejectsBadConfiguration(t *testing.T) {
	cases := map[string]func(*dto.CreateCourtRequest){
		"unknown type":       func(r *dto.CreateCourtRequest) { r.Type = "CURLING" },
		"missing name":       func(r *dto.CreateCourtRequest) { r.Name = "" },
		"weekday seven":      func(r *dto.CreateCourtRequest) { r.OpeningHours[0].Weekday = intPtr(7) },
		"missing weekday":    func(r *dto.CreateCourtRequest) { r.OpeningHours[0].Weekday = nil },
		"bad clock":          func(r *dto.CreateCourtRequest) { r.OpeningHours[0].EndTime = "25:00" },
		"inverted window":    func(r *dto.CreateCourtRequest) { r.OpeningHours[0].StartTime = "18:00" },
		"empty window":       func(r *dto.CreateCourtRequest) { r.OpeningHours[0].EndTime = "09:00" },
		"inverted exception": func(r *dto.CreateCourtRequest) { r.Exceptions[0].EndDate = "2024-12-01" },
		"invalid exception":  func(r *dto.CreateCourtRequest) { r.Exceptions[0].StartDate = "2023-02-29" },
		"slot too short":     func(r *dto.CreateCourtRequest) { r.BookingSlotMinutes = intPtr(1) },
		"negative buffer":    func(r *dto.CreateCourtRequest) { r.BufferMinutes = intPtr(-5) },
		"unknown timezone":   func(r *dto.CreateCourtRequest) { r.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := &courtStoreStub{courts: map[string]*models.Court{}}
			req := validCourtRequest()
			mutate(&req)

			_, err := newCourtService(store).Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
			assert.Empty(t, store.created)
		})
	}
}
