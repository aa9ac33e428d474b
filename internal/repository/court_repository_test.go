package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
)

var courtColumnNames = []string{"id", "name", "court_type", "venue", "timezone", "surface", "indoor", "lights", "price_per_hour", "capacity", "booking_slot_minutes", "buffer_minutes", "status", "opening_hours", "exceptions", "created_at", "updated_at"}

func TestCourtFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courtColumnNames).
		AddRow("court-1", "Court A", "TENNIS", "Main campus", "Africa/Cairo", "clay", true, nil, nil, 4, 60, 15, "ACTIVE",
			[]byte(`[{"weekday":1,"startTime":"09:00","endTime":"17:00"}]`),
			[]byte(`[{"startDate":"2024-12-20","endDate":"2024-12-21","reason":"tournament"}]`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM courts WHERE id = $1 LIMIT 1")).
		WithArgs("court-1").
		WillReturnRows(rows)

	court, err := repo.FindByID(context.Background(), "court-1")
	require.NoError(t, err)
	assert.Equal(t, models.CourtTennis, court.Type)
	assert.Equal(t, 15, court.BufferMinutes)
	require.Len(t, court.OpeningHours, 1)
	assert.Equal(t, "17:00", court.OpeningHours[0].EndTime)
	require.Len(t, court.Exceptions, 1)
	assert.Equal(t, "tournament", court.Exceptions[0].Reason)
	require.NotNil(t, court.Surface)
	assert.Nil(t, court.Lights)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectQuery("FROM courts WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courtColumnNames).
		AddRow("court-1", "Court A", "PADEL", "Sports hall", "Africa/Cairo", nil, nil, nil, nil, nil, 60, 0, "ACTIVE", []byte(`[]`), []byte(`[]`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM courts WHERE 1=1 AND court_type = $1 ORDER BY name ASC LIMIT 10 OFFSET 10")).
		WithArgs("PADEL").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courts WHERE 1=1 AND court_type = $1")).
		WithArgs("PADEL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	courts, total, err := repo.List(context.Background(), models.CourtFilter{Type: models.CourtPadel, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, courts, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectExec("INSERT INTO courts").WillReturnResult(sqlmock.NewResult(1, 1))

	court := &models.Court{Name: "Court B", Type: models.CourtSquash, Venue: "Annex", Timezone: "Africa/Cairo", BookingSlotMinutes: 45, Status: models.CourtActive}
	require.NoError(t, repo.Create(context.Background(), court))
	assert.NotEmpty(t, court.ID)
	assert.False(t, court.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
