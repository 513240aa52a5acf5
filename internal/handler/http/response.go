package http

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RoomResponse is the JSON view of a room.
type RoomResponse struct {
	ID            string            `json:"id"`
	Number        int               `json:"number"`
	Type          string            `json:"type"`
	Capacity      int               `json:"capacity"`
	PricePerNight json.Number       `json:"pricePerNight"`
	Status        domain.RoomStatus `json:"status"`
}

// ReservationResponse is the JSON view of a reservation with its room.
type ReservationResponse struct {
	ID               string                   `json:"id"`
	Room             RoomResponse             `json:"room"`
	GuestName        string                   `json:"guestName"`
	CheckinExpected  domain.Date              `json:"checkinExpected"`
	CheckoutExpected domain.Date              `json:"checkoutExpected"`
	Status           domain.ReservationStatus `json:"status"`
	TotalAmount      *json.Number             `json:"totalAmount"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// money renders an amount as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID,
		Number:        room.Number,
		Type:          room.Type,
		Capacity:      room.Capacity,
		PricePerNight: money(room.PricePerNight),
		Status:        room.Status,
	}
}

func toRoomResponses(rooms []domain.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}
	return out
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:               r.ID,
		Room:             toRoomResponse(&r.Room),
		GuestName:        r.GuestName,
		CheckinExpected:  r.CheckinExpected,
		CheckoutExpected: r.CheckoutExpected,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.TotalAmount != nil {
		amount := money(*r.TotalAmount)
		resp.TotalAmount = &amount
	}
	return resp
}

func toReservationResponses(reservations []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResponse(&reservations[i]))
	}
	return out
}
