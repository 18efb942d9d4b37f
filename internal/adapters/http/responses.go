package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pruefungsplaner/core/internal/domain/entities"
)

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error payload returned by handlers
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// getUserIDFromContext reads the authenticated user's id set by the auth
// middleware. uuid.Nil means the id is unresolved and no persistence call may
// be made on the user's behalf.
func getUserIDFromContext(c echo.Context) uuid.UUID {
	raw, ok := c.Get("user").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// examError maps the exam engine's error taxonomy onto HTTP status codes:
// invalid drafts are the client's to fix, a stale id is not found, and a
// failed adapter call is a transient upstream failure.
func examError(err error) error {
	var validationErr *entities.ValidationError
	var persistenceErr *entities.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: validationErr.Error(), Field: validationErr.Field})
	case errors.Is(err, entities.ErrExamNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Message: "exam not found"})
	case errors.Is(err, entities.ErrUserUnresolved), errors.Is(err, entities.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	case errors.As(err, &persistenceErr):
		return echo.NewHTTPError(http.StatusBadGateway, ErrorResponse{Message: "storage temporarily unavailable, please retry"})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}
