package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
)

type reservationsByDay interface {
	ListByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error)
}

// AvailabilityService loads a court and its reservations for a day and runs the slot calculator.
type AvailabilityService struct {
	courts       courtReader
	reservations reservationsByDay
	cache        *CacheService
	cacheTTL     time.Duration
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService. cache and metrics may be nil.
func NewAvailabilityService(courts courtReader, reservations reservationsByDay, cache *CacheService, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		courts:       courts,
		reservations: reservations,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics,
		validator:    registerBookingTags(validate),
		logger:       logger,
	}
}

func courtKey(courtID string) string {
	return fmt.Sprintf("availability:court:%s", courtID)
}

// Get returns the slots of courtID on dateISO. Only the court configuration is cached;
// reservations are read from the store on every call so a committed booking is never hidden.
func (s *AvailabilityService) Get(ctx context.Context, courtID, dateISO string) (*models.Availability, error) {
	if err := s.validator.Var(courtID, "required,uuid"); err != nil {
		return nil, appErrors.ErrInvalidCourtID
	}
	if err := s.validator.Var(dateISO, "required,isodate"); err != nil {
		return nil, appErrors.ErrInvalidDateFormat
	}

	court, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}

	queryStart := time.Now()
	reservations, err := s.reservations.ListByCourtAndDate(ctx, courtID, dateISO)
	s.metrics.ObserveDBQuery("reservations_by_day", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load reservations")
	}

	computeStart := time.Now()
	result, err := ComputeAvailability(court, dateISO, reservations)
	s.metrics.ObserveAvailability(time.Since(computeStart))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// court loads the court configuration through the cache. Courts are not edited through
// this service, so entries only age out by TTL.
func (s *AvailabilityService) court(ctx context.Context, courtID string) (*models.Court, error) {
	key := courtKey(courtID)
	var cached models.Court
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCourtNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load court")
	}

	if s.cache.Enabled() {
		s.logger.Debug("court configuration cached", zap.String("court_id", courtID), zap.Duration("ttl", s.cacheTTL))
		_ = s.cache.Set(ctx, key, court, s.cacheTTL)
	}
	return court, nil
}
