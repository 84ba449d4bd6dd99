package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/sirupsen/logrus"
)

// respondError переводит доменные ошибки в HTTP-статусы
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Success: false,
			Message: "Validation error",
			Errors:  verr.Fields,
		})
	case errors.Is(err, models.ErrValidation), errors.Is(err, geo.ErrInvalidCoordinate):
		log.WithError(err).Warn("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		log.WithError(err).Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrTimeout):
		log.WithError(err).Warn("Offer expired")
		c.JSON(http.StatusGone, gin.H{"error": "offer expired"})
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, models.ErrIncidentClosed),
		errors.Is(err, models.ErrDispatchExhausted):
		log.WithError(err).Warn("Request conflicts with incident state")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func validationFailed(field, message string) error {
	verr := &models.ValidationError{}
	verr.Add(field, message)
	return verr
}
