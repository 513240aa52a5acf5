package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/service"
)

// ReservationHandler serves the reservation endpoints.
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a ReservationHandler.
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest is the body of POST /reservations. Dates use the
// YYYY-MM-DD layout.
type CreateReservationRequest struct {
	RoomID           string      `json:"roomId" binding:"required"`
	GuestName        string      `json:"guestName" binding:"required"`
	CheckinExpected  domain.Date `json:"checkinExpected"`
	CheckoutExpected domain.Date `json:"checkoutExpected"`
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateReservation: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var in service.CreateReservationInput
	if err := copier.Copy(&in, &req); err != nil {
		HandleServiceError(c, err)
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, toReservationResponse(reservation))
}

// FindAll handles GET /reservations.
func (h *ReservationHandler) FindAll(c *gin.Context) {
	reservations, err := h.reservationService.FindAll(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toReservationResponses(reservations))
}

// FindByStatus handles GET /reservations/status/:status. Unknown statuses match nothing.
func (h *ReservationHandler) FindByStatus(c *gin.Context) {
	status := domain.ReservationStatus(strings.ToUpper(c.Param("status")))
	reservations, err := h.reservationService.FindByStatus(c.Request.Context(), status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toReservationResponses(reservations))
}

// FindByID handles GET /reservations/:id.
func (h *ReservationHandler) FindByID(c *gin.Context) {
	reservation, err := h.reservationService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toReservationResponse(reservation))
}

// CheckIn handles PATCH /reservations/:id/checkin.
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.reservationService.CheckIn)
}

// CheckOut handles PATCH /reservations/:id/checkout.
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.reservationService.CheckOut)
}

// Cancel handles PATCH /reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.reservationService.Cancel)
}

func (h *ReservationHandler) transition(c *gin.Context, op func(ctx context.Context, id string) (*domain.Reservation, error)) {
	reservation, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toReservationResponse(reservation))
}
