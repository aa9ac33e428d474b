package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

const (
	uniqueViolation = "23505"
	slotConstraint  = "reservations_court_date_start_key"

	reservationColumns = `id, court_id, user_id, to_char(reservation_date, 'YYYY-MM-DD') AS reservation_date, start_time, end_time, student_name, student_guc_id, created_at`
)

// ReservationRepository persists reservations. The (court_id, reservation_date, start_time)
// unique constraint is the only thing that serialises competing bookings.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ExistsForSlot reports whether a reservation already holds the slot.
func (r *ReservationRepository) ExistsForSlot(ctx context.Context, courtID, date, startTime string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reservations WHERE court_id = $1 AND reservation_date = $2 AND start_time = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, courtID, date, startTime); err != nil {
		return false, fmt.Errorf("check reservation slot: %w", err)
	}
	return exists, nil
}

// ListByCourtAndDate returns the reservations of a court on a date ordered by start time.
func (r *ReservationRepository) ListByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE court_id = $1 AND reservation_date = $2 ORDER BY start_time ASC", reservationColumns)
	var rows []models.Reservation
	if err := r.db.SelectContext(ctx, &rows, query, courtID, date); err != nil {
		return nil, fmt.Errorf("list court reservations: %w", err)
	}
	return rows, nil
}

// ListByUser returns the reservations made by a user, newest date first.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE user_id = $1 ORDER BY reservation_date DESC, start_time ASC", reservationColumns)
	var rows []models.Reservation
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list user reservations: %w", err)
	}
	return rows, nil
}

// Create inserts the reservation and appends it to the user's reserved_courts in one
// transaction. A lost race on the slot surfaces as ErrSlotAlreadyReserved.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reservation: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const insert = `INSERT INTO reservations (id, court_id, user_id, reservation_date, start_time, end_time, student_name, student_guc_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, insert,
		reservation.ID, reservation.CourtID, reservation.UserID, reservation.Date,
		reservation.StartTime, reservation.EndTime, reservation.StudentName, reservation.StudentGucID,
		reservation.CreatedAt,
	); err != nil {
		if isSlotConflict(err) {
			return appErrors.Wrap(err, appErrors.ErrSlotAlreadyReserved, "")
		}
		return fmt.Errorf("insert reservation: %w", err)
	}

	const appendRef = `UPDATE users SET reserved_courts = array_append(reserved_courts, $2), updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, appendRef, reservation.UserID, reservation.ID, reservation.CreatedAt); err != nil {
		return fmt.Errorf("append user reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reservation: %w", err)
	}
	commit = true
	return nil
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == slotConstraint)
}
