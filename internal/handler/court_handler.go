package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedbr1/zapvent-courts/internal/dto"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
	"github.com/ahmedbr1/zapvent-courts/pkg/response"
)

type courtService interface {
	Get(ctx context.Context, courtID string) (*models.Court, error)
	List(ctx context.Context, query dto.CourtQuery) ([]models.Court, *models.Pagination, error)
	Create(ctx context.Context, req dto.CreateCourtRequest) (*models.Court, error)
}

// CourtHandler exposes the court catalog.
type CourtHandler struct {
	service courtService
}

// NewCourtHandler builds a court handler.
func NewCourtHandler(service courtService) *CourtHandler {
	return &CourtHandler{service: service}
}

// List godoc
// @Summary List courts
// @Tags Courts
// @Produce json
// @Param type query string false "Court type (TENNIS, FOOTBALL, BASKETBALL, PADEL, VOLLEYBALL, SQUASH)"
// @Param status query string false "ACTIVE or MAINTENANCE"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courts [get]
func (h *CourtHandler) List(c *gin.Context) {
	query := dto.CourtQuery{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}
	courts, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courts, pagination)
}

// Get godoc
// @Summary Get a court's configuration
// @Tags Courts
// @Produce json
// @Param courtId path string true "Court ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courts/{courtId} [get]
func (h *CourtHandler) Get(c *gin.Context) {
	court, err := h.service.Get(c.Request.Context(), c.Param("courtId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, court, nil)
}

// Create godoc
// @Summary Register a court
// @Tags Courts
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourtRequest true "Court payload"
// @Success 201 {object} response.Envelope
// @Router /courts [post]
func (h *CourtHandler) Create(c *gin.Context) {
	var req dto.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid court payload"))
		return
	}
	court, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, court)
}
