package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/boxoffice/internal/entity"
	"github.com/ds124wfegd/boxoffice/internal/service"
	"github.com/ds124wfegd/boxoffice/pkg/queue"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrCustomerNotFound),
		errors.Is(err, queue.ErrNotInDLQ):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrCapacityExceeded),
		errors.Is(err, entity.ErrNotSellable),
		errors.Is(err, entity.ErrDuplicateItem),
		errors.Is(err, entity.ErrDuplicateCustomer):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotificationsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
