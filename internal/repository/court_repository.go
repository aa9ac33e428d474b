package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
)

const courtColumns = `id, name, court_type, venue, timezone, surface, indoor, lights, price_per_hour, capacity, booking_slot_minutes, buffer_minutes, status, opening_hours, exceptions, created_at, updated_at`

// CourtRepository provides database access for court configuration.
type CourtRepository struct {
	db *sqlx.DB
}

// NewCourtRepository creates a new instance of CourtRepository.
func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

// FindByID returns a court by identifier.
func (r *CourtRepository) FindByID(ctx context.Context, id string) (*models.Court, error) {
	query := fmt.Sprintf("SELECT %s FROM courts WHERE id = $1 LIMIT 1", courtColumns)
	var court models.Court
	if err := r.db.GetContext(ctx, &court, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find court by id: %w", err)
	}
	return &court, nil
}

// List returns courts matching the filter with the total count.
func (r *CourtRepository) List(ctx context.Context, filter models.CourtFilter) ([]models.Court, int, error) {
	baseQuery := `FROM courts WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("court_type = $%d", len(args)+1))
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", courtColumns, baseQuery, pageSize, offset)
	var courts []models.Court
	if err := r.db.SelectContext(ctx, &courts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list courts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+baseQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courts: %w", err)
	}
	return courts, total, nil
}

// Create inserts a court.
func (r *CourtRepository) Create(ctx context.Context, court *models.Court) error {
	if court.ID == "" {
		court.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if court.CreatedAt.IsZero() {
		court.CreatedAt = now
	}
	court.UpdatedAt = now

	const query = `INSERT INTO courts (id, name, court_type, venue, timezone, surface, indoor, lights, price_per_hour, capacity, booking_slot_minutes, buffer_minutes, status, opening_hours, exceptions, created_at, updated_at)
VALUES (:id, :name, :court_type, :venue, :timezone, :surface, :indoor, :lights, :price_per_hour, :capacity, :booking_slot_minutes, :buffer_minutes, :status, :opening_hours, :exceptions, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, court); err != nil {
		return fmt.Errorf("create court: %w", err)
	}
	return nil
}
