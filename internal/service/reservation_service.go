package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahmedbr1/zapvent-courts/internal/dto"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
	"github.com/ahmedbr1/zapvent-courts/pkg/export"
)

const outcomeCreated = "CREATED"

type reservationStore interface {
	slotLookup
	reservationsByDay
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	Create(ctx context.Context, reservation *models.Reservation) error
}

type sheetRenderer interface {
	Render(sheet export.Sheet, format export.Format) ([]byte, error)
}

// ReservationService composes validation and persistence into the reserve operation.
type ReservationService struct {
	bookings  *ReservationValidator
	courts    courtReader
	store     reservationStore
	renderer  sheetRenderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReservationService wires the orchestrator. renderer and metrics may be nil.
func NewReservationService(bookings *ReservationValidator, courts courtReader, store reservationStore, renderer sheetRenderer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = export.NewRenderer()
	}
	return &ReservationService{
		bookings:  bookings,
		courts:    courts,
		store:     store,
		renderer:  renderer,
		metrics:   metrics,
		validator: registerBookingTags(validate),
		logger:    logger,
	}
}

// Reserve books one slot for userID. It never retries: a lost race is reported as
// SLOT_ALREADY_RESERVED, exactly like the validator's own check.
func (s *ReservationService) Reserve(ctx context.Context, courtID, userID string, req dto.ReservationRequest) (*models.Reservation, error) {
	validated, err := s.bookings.Validate(ctx, courtID, userID, req)
	if err != nil {
		s.metrics.RecordReservation(appErrors.FromError(err).Code)
		return nil, err
	}

	reservation := &models.Reservation{
		CourtID:         validated.Court.ID,
		UserID:          validated.User.ID,
		Date:            validated.Date,
		StartTime:       validated.StartTime,
		EndTime:         validated.EndTime,
		StudentSnapshot: validated.User.Snapshot(),
	}
	if err := s.store.Create(ctx, reservation); err != nil {
		if errors.Is(err, appErrors.ErrSlotAlreadyReserved) {
			s.metrics.RecordReservation(appErrors.ErrSlotAlreadyReserved.Code)
			s.logger.Info("reservation lost race",
				zap.String("court_id", reservation.CourtID),
				zap.String("date", reservation.Date),
				zap.String("start_time", reservation.StartTime))
			return nil, appErrors.FromError(err)
		}
		s.metrics.RecordReservation(appErrors.ErrInternal.Code)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to save reservation")
	}

	s.metrics.RecordReservation(outcomeCreated)
	s.logger.Info("reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("court_id", reservation.CourtID),
		zap.String("user_id", reservation.UserID),
		zap.String("date", reservation.Date),
		zap.String("start_time", reservation.StartTime))
	return reservation, nil
}

// ListForCourt returns every reservation on a court day ordered by start time.
func (s *ReservationService) ListForCourt(ctx context.Context, courtID, dateISO string) ([]models.Reservation, error) {
	if _, err := s.loadCourtDay(ctx, courtID, dateISO); err != nil {
		return nil, err
	}
	rows, err := s.store.ListByCourtAndDate(ctx, courtID, dateISO)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list reservations")
	}
	if rows == nil {
		rows = []models.Reservation{}
	}
	return rows, nil
}

// ListForUser returns the reservations held by userID, read from the reservation store.
func (s *ReservationService) ListForUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	if err := s.validator.Var(userID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidUserID
	}
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list reservations")
	}
	if rows == nil {
		rows = []models.Reservation{}
	}
	return rows, nil
}

// ExportDaySheet renders every slot of a court day with its holder, for front-desk printing.
func (s *ReservationService) ExportDaySheet(ctx context.Context, req dto.DaySheetRequest) (*dto.DaySheet, error) {
	format := export.Format(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == "" {
		format = export.FormatCSV
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	court, err := s.loadCourtDay(ctx, req.CourtID, req.Date)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListByCourtAndDate(ctx, court.ID, req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list reservations")
	}
	availability, err := ComputeAvailability(court, req.Date, rows)
	if err != nil {
		return nil, err
	}

	holders := make(map[string]models.Reservation, len(rows))
	for _, r := range rows {
		holders[r.StartTime] = r
	}

	sheet := export.Sheet{
		Title:    fmt.Sprintf("%s - %s", court.Name, req.Date),
		Subtitle: fmt.Sprintf("%s, %s (%s)", court.Venue, court.Type, court.Timezone),
		Headers:  []string{"Start", "End", "Status", "Student", "GUC ID"},
		Rows:     make([][]string, 0, len(availability.Slots)),
	}
	if availability.Reason != "" {
		sheet.Subtitle = fmt.Sprintf("%s - %s", sheet.Subtitle, availability.Reason)
	}
	for _, slot := range availability.Slots {
		if slot.IsAvailable {
			sheet.Rows = append(sheet.Rows, []string{slot.StartTime, slot.EndTime, "Available"})
			continue
		}
		holder := holders[slot.StartTime]
		sheet.Rows = append(sheet.Rows, []string{slot.StartTime, slot.EndTime, "Reserved", holder.StudentName, holder.StudentGucID})
	}

	body, err := s.renderer.Render(sheet, format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to render day sheet")
	}
	return &dto.DaySheet{
		Filename:    fmt.Sprintf("court-%s-%s.%s", court.ID, req.Date, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func (s *ReservationService) loadCourtDay(ctx context.Context, courtID, dateISO string) (*models.Court, error) {
	if err := s.validator.Var(courtID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidCourtID
	}
	if err := s.validator.Var(dateISO, "required,isodate"); err != nil {
		return nil, appErrors.ErrInvalidDateFormat
	}
	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCourtNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load court")
	}
	return court, nil
}
