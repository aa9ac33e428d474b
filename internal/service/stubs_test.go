package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

type courtStoreStub struct {
	courts  map[string]*models.Court
	err     error
	created []models.Court
}

func (s *courtStoreStub) FindByID(ctx context.Context, id string) (*models.Court, error) {
	if s.err != nil {
		return nil, s.err
	}
	court, ok := s.courts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *court
	return &copied, nil
}

func (s *courtStoreStub) List(ctx context.Context, filter models.CourtFilter) ([]models.Court, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	var out []models.Court
	for _, c := range s.courts {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (s *courtStoreStub) Create(ctx context.Context, court *models.Court) error {
	if s.err != nil {
		return s.err
	}
	if court.ID == "" {
		court.ID = testCourtID
	}
	s.created = append(s.created, *court)
	return nil
}

type userStoreStub struct {
	users map[string]*models.User
	err   error
}

func (s *userStoreStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

// reservationStoreStub mimics the unique (court, date, start) index under a mutex.
type reservationStoreStub struct {
	mu           sync.Mutex
	rows         []models.Reservation
	err          error
	existsCalls  int
	skipAdvisory bool
	appended     map[string][]string
	beforeCreate func()
}

func slotKey(courtID, date, start string) string {
	return courtID + "|" + date + "|" + start
}

func (s *reservationStoreStub) ExistsForSlot(ctx context.Context, courtID, date, startTime string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existsCalls++
	if s.err != nil {
		return false, s.err
	}
	if s.skipAdvisory {
		return false, nil
	}
	for _, r := range s.rows {
		if slotKey(r.CourtID, r.Date, r.StartTime) == slotKey(courtID, date, startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *reservationStoreStub) ListByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Reservation
	for _, r := range s.rows {
		if r.CourtID == courtID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationStoreStub) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reservation
	for _, r := range s.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationStoreStub) Create(ctx context.Context, reservation *models.Reservation) error {
	if s.beforeCreate != nil {
		s.beforeCreate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, r := range s.rows {
		if slotKey(r.CourtID, r.Date, r.StartTime) == slotKey(reservation.CourtID, reservation.Date, reservation.StartTime) {
			return appErrors.Wrap(errors.New("duplicate key value violates unique constraint"), appErrors.ErrSlotAlreadyReserved, "")
		}
	}
	reservation.ID = "res-" + reservation.StartTime
	reservation.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, *reservation)
	if s.appended == nil {
		s.appended = map[string][]string{}
	}
	s.appended[reservation.UserID] = append(s.appended[reservation.UserID], reservation.ID)
	return nil
}

func strPtr(v string) *string {
	return &v
}

func verifiedStudent() *models.User {
	return &models.User{ID: testUserID, FirstName: "Mona", LastName: "Ali", GucID: strPtr("52-1234"), Role: models.RoleStudent, Verified: true}
}

type bookingFixture struct {
	courts       *courtStoreStub
	users        *userStoreStub
	reservations *reservationStoreStub
}

func newBookingFixture(court *models.Court, users ...*models.User) *bookingFixture {
	f := &bookingFixture{
		courts:       &courtStoreStub{courts: map[string]*models.Court{court.ID: court}},
		users:        &userStoreStub{users: map[string]*models.User{}},
		reservations: &reservationStoreStub{},
	}
	if len(users) == 0 {
		users = []*models.User{verifiedStudent()}
	}
	for _, u := range users {
		f.users.users[u.ID] = u
	}
	return f
}

func (f *bookingFixture) validator() *ReservationValidator {
	return NewReservationValidator(f.courts, f.users, f.reservations, nil, nil)
}
