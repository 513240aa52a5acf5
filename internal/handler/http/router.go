package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the room and reservation endpoints on router.
func RegisterRoutes(router gin.IRouter, rooms *RoomHandler, reservations *ReservationHandler) {
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	roomRoutes := router.Group("/rooms")
	{
		roomRoutes.GET("", rooms.List)
		roomRoutes.POST("", rooms.Register)
		roomRoutes.GET("/status/:status", rooms.ListByStatus)
		roomRoutes.GET("/:id", rooms.Get)
		roomRoutes.PATCH("/:id/deactivate", rooms.Deactivate)
		roomRoutes.GET("/:id/reservations", rooms.Reservations)
	}

	reservationRoutes := router.Group("/reservations")
	{
		reservationRoutes.GET("", reservations.FindAll)
		reservationRoutes.POST("", reservations.Create)
		reservationRoutes.GET("/status/:status", reservations.FindByStatus)
		reservationRoutes.GET("/:id", reservations.FindByID)
		reservationRoutes.PATCH("/:id/checkin", reservations.CheckIn)
		reservationRoutes.PATCH("/:id/checkout", reservations.CheckOut)
		reservationRoutes.PATCH("/:id/cancel", reservations.Cancel)
	}
}
