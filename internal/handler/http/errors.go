package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/service"
)

// HandleServiceError writes the response for an error returned by a service.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrBusinessRule):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
