package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahmedbr1/zapvent-courts/internal/dto"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

type courtReader interface {
	FindByID(ctx context.Context, id string) (*models.Court, error)
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type slotLookup interface {
	ExistsForSlot(ctx context.Context, courtID, date, startTime string) (bool, error)
}

// ValidatedReservation is a request that passed every check, with the end time resolved.
type ValidatedReservation struct {
	Court     *models.Court
	User      *models.User
	Date      string
	StartTime string
	EndTime   string
}

// ReservationValidator runs the ordered, read-only booking checks and stops at the first failure.
type ReservationValidator struct {
	courts       courtReader
	users        userReader
	reservations slotLookup
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewReservationValidator wires the validator dependencies.
func NewReservationValidator(courts courtReader, users userReader, reservations slotLookup, validate *validator.Validate, logger *zap.Logger) *ReservationValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationValidator{
		courts:       courts,
		users:        users,
		reservations: reservations,
		validator:    registerBookingTags(validate),
		logger:       logger,
	}
}

// Validate checks a booking request. The slot-taken check here is advisory only;
// the store's unique constraint decides races.
func (v *ReservationValidator) Validate(ctx context.Context, courtID, userID string, req dto.ReservationRequest) (*ValidatedReservation, error) {
	if err := v.validator.Var(courtID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidCourtID
	}
	if err := v.validator.Var(userID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidUserID
	}
	if err := v.validator.Var(req.Date, "required,isodate"); err != nil {
		return nil, appErrors.ErrInvalidDateFormat
	}
	if err := v.validator.Var(req.StartTime, "required,hhmm"); err != nil {
		return nil, appErrors.ErrInvalidStartTimeFormat
	}
	if err := v.validator.Var(req.EndTime, "omitempty,hhmm"); err != nil {
		return nil, appErrors.ErrInvalidEndTimeFormat
	}

	court, err := v.courts.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCourtNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load court")
	}

	user, err := v.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, _ := parseDate(req.Date)
	plan := planDay(court, date)
	if plan.blackout {
		return nil, appErrors.ErrCourtUnavailable
	}
	if plan.closed() {
		return nil, appErrors.ErrCourtClosed
	}

	start, _ := parseClock(req.StartTime)
	end := start + court.BookingSlotMinutes
	if req.EndTime != "" {
		end, _ = parseClock(req.EndTime)
	}

	if end-start != court.BookingSlotMinutes {
		return nil, appErrors.ErrSlotLengthMismatch
	}

	containing := make([]windowPlan, 0, len(plan.windows))
	for _, w := range plan.windows {
		if w.start <= start && end <= w.end {
			containing = append(containing, w)
		}
	}
	if len(containing) == 0 {
		return nil, appErrors.ErrOutsideOpeningHours
	}
	if !alignedInAny(containing, start, end) {
		return nil, appErrors.ErrSlotNotAligned
	}

	startTime := formatClock(start)
	taken, err := v.reservations.ExistsForSlot(ctx, court.ID, req.Date, startTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to check slot")
	}
	if taken {
		return nil, appErrors.ErrSlotAlreadyReserved
	}

	return &ValidatedReservation{
		Court:     court,
		User:      user,
		Date:      req.Date,
		StartTime: startTime,
		EndTime:   formatClock(end),
	}, nil
}

// authorize re-checks the caller against the user store; missing, unverified and non-student
// accounts are all rejected the same way.
func (v *ReservationValidator) authorize(ctx context.Context, userID string) (*models.User, error) {
	user, err := v.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotAuthorized
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load user")
	}
	if !user.Verified || user.Role != models.RoleStudent {
		v.logger.Debug("reservation refused", zap.String("user_id", userID), zap.String("role", string(user.Role)), zap.Bool("verified", user.Verified))
		return nil, appErrors.ErrNotAuthorized
	}
	return user, nil
}

func alignedInAny(windows []windowPlan, start, end int) bool {
	for _, w := range windows {
		for _, span := range w.slots {
			if span.start == start && span.end == end {
				return true
			}
		}
	}
	return false
}
