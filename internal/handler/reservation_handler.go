package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedbr1/zapvent-courts/internal/dto"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	appErrors "github.com/ahmedbr1/zapvent-courts/pkg/errors"
	"github.com/ahmedbr1/zapvent-courts/pkg/response"
)

type reservationService interface {
	Reserve(ctx context.Context, courtID, userID string, req dto.ReservationRequest) (*models.Reservation, error)
	ListForCourt(ctx context.Context, courtID, dateISO string) ([]models.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ExportDaySheet(ctx context.Context, req dto.DaySheetRequest) (*dto.DaySheet, error)
}

// ReservationHandler exposes booking endpoints.
type ReservationHandler struct {
	service reservationService
}

// NewReservationHandler builds a reservation handler.
func NewReservationHandler(service reservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Reserve godoc
// @Summary Reserve a court slot
// @Description The caller must be a verified student. endTime defaults to startTime plus the court slot length.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param courtId path string true "Court ID"
// @Param payload body dto.ReservationRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courts/{courtId}/reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	reservation, err := h.service.Reserve(c.Request.Context(), c.Param("courtId"), claims.UserID, bindReservation(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ReservationResponse{Reservation: *reservation})
}

// ListForCourt godoc
// @Summary List reservations on a court day
// @Tags Reservations
// @Produce json
// @Param courtId path string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /courts/{courtId}/reservations [get]
func (h *ReservationHandler) ListForCourt(c *gin.Context) {
	rows, err := h.service.ListForCourt(c.Request.Context(), c.Param("courtId"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ReservationList{Reservations: rows}, nil)
}

// Export godoc
// @Summary Export a court day sheet
// @Tags Reservations
// @Produce text/csv
// @Produce application/pdf
// @Param courtId path string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /courts/{courtId}/reservations/export [get]
func (h *ReservationHandler) Export(c *gin.Context) {
	sheet, err := h.service.ExportDaySheet(c.Request.Context(), dto.DaySheetRequest{
		CourtID: c.Param("courtId"),
		Date:    c.Query("date"),
		Format:  c.Query("format"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, sheet.Filename, sheet.ContentType, sheet.Body)
}

// ListMine godoc
// @Summary List the caller's reservations
// @Tags Reservations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reservations/me [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	rows, err := h.service.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ReservationList{Reservations: rows}, nil)
}

// bindReservation reads the body without rejecting it. Missing fields stay empty and
// non-string values are kept in printed form, so the ordered booking checks report them.
func bindReservation(c *gin.Context) dto.ReservationRequest {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		raw = nil
	}
	return dto.ReservationRequest{
		Date:      stringField(raw, "date"),
		StartTime: stringField(raw, "startTime"),
		EndTime:   stringField(raw, "endTime"),
	}
}

func stringField(raw map[string]interface{}, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
