package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/forms"
	"karesave-backend/internal/repositories"
	"karesave-backend/internal/services"
	"karesave-backend/pkg/auth"
)

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Fields  []forms.ValidationError `json:"fields,omitempty"`
}

// respondError maps domain errors to a status and ErrorResponse. Anything
// unrecognised is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	if verrs, ok := forms.AsValidationErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Validation failed",
			Message: verrs.Error(),
			Fields:  verrs,
		})
		return
	}

	status, title := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, cart.ErrUnknownProduct):
		status, title = http.StatusNotFound, "Product not found"
	case errors.Is(err, cart.ErrNotFound):
		status, title = http.StatusNotFound, "Product not in cart"
	case errors.Is(err, cart.ErrOutOfStock):
		status, title = http.StatusConflict, "Out of stock"
	case errors.Is(err, cart.ErrInvalidQuantity):
		status, title = http.StatusBadRequest, "Invalid quantity"
	case errors.Is(err, services.ErrEmptyCart):
		status, title = http.StatusConflict, "Cart is empty"
	case errors.Is(err, services.ErrIdempotencyConflict):
		status, title = http.StatusConflict, "Idempotency key reused"
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, repositories.ErrNotFound):
		status, title = http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrInvalidStatusTransition):
		status, title = http.StatusConflict, "Invalid status transition"
	case errors.Is(err, services.ErrEmptyMessage):
		status, title = http.StatusBadRequest, "Empty message"
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType):
		status, title = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, services.ErrInboxUnavailable):
		status, title = http.StatusServiceUnavailable, "Inbox unavailable"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "something went wrong, please try again"
	}
	c.JSON(status, ErrorResponse{Error: title, Message: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request",
		Message: err.Error(),
	})
}
