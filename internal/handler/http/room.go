package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/service"
)

// RoomHandler serves the room inventory endpoints.
type RoomHandler struct {
	roomService        *service.RoomService
	reservationService *service.ReservationService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomService *service.RoomService, reservationService *service.ReservationService) *RoomHandler {
	return &RoomHandler{roomService: roomService, reservationService: reservationService}
}

// RegisterRoomRequest is the body of POST /rooms.
type RegisterRoomRequest struct {
	Number        int             `json:"number" binding:"required,gt=0"`
	Type          string          `json:"type" binding:"required,max=100"`
	Capacity      int             `json:"capacity" binding:"required,gte=1"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
}

// Register handles POST /rooms.
func (h *RoomHandler) Register(c *gin.Context) {
	var req RegisterRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.RegisterRoom: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var in service.RegisterRoomInput
	if err := copier.Copy(&in, &req); err != nil {
		HandleServiceError(c, err)
		return
	}

	room, err := h.roomService.Register(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, toRoomResponse(room))
}

// List handles GET /rooms. The optional type and status query parameters
// narrow the result; a type without a status means ACTIVE rooms of that type.
func (h *RoomHandler) List(c *gin.Context) {
	roomType := strings.TrimSpace(c.Query("type"))
	status := domain.RoomStatus(strings.ToUpper(c.Query("status")))

	var (
		rooms []domain.Room
		err   error
	)
	if roomType != "" {
		if status == "" {
			status = domain.RoomStatusActive
		}
		rooms, err = h.roomService.ListByTypeAndStatus(c.Request.Context(), roomType, status)
	} else {
		rooms, err = h.roomService.List(c.Request.Context(), status)
	}
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toRoomResponses(rooms))
}

// ListByStatus handles GET /rooms/status/:status. Unknown statuses match nothing.
func (h *RoomHandler) ListByStatus(c *gin.Context) {
	status := domain.RoomStatus(strings.ToUpper(c.Param("status")))
	rooms, err := h.roomService.List(c.Request.Context(), status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toRoomResponses(rooms))
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.roomService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toRoomResponse(room))
}

// Deactivate handles PATCH /rooms/:id/deactivate.
func (h *RoomHandler) Deactivate(c *gin.Context) {
	if err := h.roomService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reservations handles GET /rooms/:id/reservations.
func (h *RoomHandler) Reservations(c *gin.Context) {
	reservations, err := h.reservationService.FindByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, toReservationResponses(reservations))
}
