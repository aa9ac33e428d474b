package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedbr1/zapvent-courts/internal/models"
	"github.com/ahmedbr1/zapvent-courts/pkg/response"
)

type availabilityService interface {
	Get(ctx context.Context, courtID, dateISO string) (*models.Availability, error)
}

// AvailabilityHandler serves computed slot lists.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler builds an availability handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Get godoc
// @Summary List a court's slots on a date
// @Tags Availability
// @Produce json
// @Param courtId path string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courts/{courtId}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("courtId"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
