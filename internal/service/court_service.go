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
)

type courtCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Court, error)
	List(ctx context.Context, filter models.CourtFilter) ([]models.Court, int, error)
	Create(ctx context.Context, court *models.Court) error
}

// CourtDefaults fill in slot settings omitted from a create request.
type CourtDefaults struct {
	SlotMinutes   int
	BufferMinutes int
	Timezone      string
}

// CourtService exposes the court catalog.
type CourtService struct {
	repo      courtCatalog
	validator *validator.Validate
	logger    *zap.Logger
	defaults  CourtDefaults
}

// NewCourtService constructs a CourtService.
func NewCourtService(repo courtCatalog, validate *validator.Validate, logger *zap.Logger, defaults CourtDefaults) *CourtService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.SlotMinutes <= 0 {
		defaults.SlotMinutes = 60
	}
	if defaults.BufferMinutes < 0 {
		defaults.BufferMinutes = 0
	}
	return &CourtService{repo: repo, validator: registerBookingTags(validate), logger: logger, defaults: defaults}
}

// Get returns the full configuration of a court.
func (s *CourtService) Get(ctx context.Context, courtID string) (*models.Court, error) {
	if err := s.validator.Var(courtID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidCourtID
	}
	court, err := s.repo.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCourtNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load court")
	}
	return court, nil
}

// List returns a page of courts.
func (s *CourtService) List(ctx context.Context, query dto.CourtQuery) ([]models.Court, *models.Pagination, error) {
	filter := models.CourtFilter{
		Type:     models.CourtType(strings.ToUpper(strings.TrimSpace(query.Type))),
		Status:   models.CourtStatus(strings.ToUpper(strings.TrimSpace(query.Status))),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if err := s.validator.Var(string(filter.Type), "omitempty,oneof=TENNIS FOOTBALL BASKETBALL PADEL VOLLEYBALL SQUASH"); err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown court type")
	}
	if err := s.validator.Var(string(filter.Status), "omitempty,oneof=ACTIVE MAINTENANCE"); err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown court status")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	courts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list courts")
	}
	if courts == nil {
		courts = []models.Court{}
	}
	return courts, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Create registers a court after validating its weekly windows and exceptions.
func (s *CourtService) Create(ctx context.Context, req dto.CreateCourtRequest) (*models.Court, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid court payload")
	}

	court := &models.Court{
		Name:               strings.TrimSpace(req.Name),
		Type:               req.Type,
		Venue:              strings.TrimSpace(req.Venue),
		Timezone:           req.Timezone,
		Surface:            req.Surface,
		Indoor:             req.Indoor,
		Lights:             req.Lights,
		PricePerHour:       req.PricePerHour,
		Capacity:           req.Capacity,
		BookingSlotMinutes: s.defaults.SlotMinutes,
		BufferMinutes:      s.defaults.BufferMinutes,
		Status:             req.Status,
		OpeningHours:       make(models.OpeningHours, 0, len(req.OpeningHours)),
		Exceptions:         make(models.CourtExceptions, 0, len(req.Exceptions)),
	}
	if court.Timezone == "" {
		court.Timezone = s.defaults.Timezone
	}
	if req.BookingSlotMinutes != nil {
		court.BookingSlotMinutes = *req.BookingSlotMinutes
	}
	if req.BufferMinutes != nil {
		court.BufferMinutes = *req.BufferMinutes
	}
	if court.Status == "" {
		court.Status = models.CourtActive
	}

	for i, w := range req.OpeningHours {
		start, _ := parseClock(w.StartTime)
		end, _ := parseClock(w.EndTime)
		if end <= start {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("openingHours[%d]: startTime must be before endTime", i))
		}
		court.OpeningHours = append(court.OpeningHours, models.OpeningWindow{Weekday: *w.Weekday, StartTime: w.StartTime, EndTime: w.EndTime})
	}
	for i, ex := range req.Exceptions {
		// ISO dates compare correctly as strings.
		if ex.EndDate < ex.StartDate {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("exceptions[%d]: startDate must not be after endDate", i))
		}
		court.Exceptions = append(court.Exceptions, models.CourtException{StartDate: ex.StartDate, EndDate: ex.EndDate, Reason: strings.TrimSpace(ex.Reason)})
	}

	if err := s.repo.Create(ctx, court); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to create court")
	}
	s.logger.Info("court created", zap.String("court_id", court.ID), zap.String("type", string(court.Type)))
	return court, nil
}
