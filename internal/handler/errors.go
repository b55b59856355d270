package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SteampunkGill/Docker-final-assignment/internal/middleware"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const (
	ReasonValidation        = "validation_error"
	ReasonUnauthorized      = "unauthorized"
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInvalidState      = "invalid_state"
	ReasonConflict          = "conflict"
	ReasonInternal          = "internal_error"
)

var errorMapping = []struct {
	target error
	status int
	reason string
}{
	{usecase.ErrValidation, http.StatusBadRequest, ReasonValidation},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, ReasonUnauthorized},
	{usecase.ErrNotFound, http.StatusNotFound, ReasonNotFound},
	{usecase.ErrInsufficientStock, http.StatusConflict, ReasonInsufficientStock},
	{usecase.ErrInvalidState, http.StatusConflict, ReasonInvalidState},
	{usecase.ErrConflict, http.StatusConflict, ReasonConflict},
}

// writeError maps usecase errors to a status and reason. Unknown errors are
// logged and answered with a generic 500.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.JSON(m.status, ErrorResponse{Error: m.reason, Message: publicMessage(err, m.target)})
		}
	}

	zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ReasonInternal, Message: "internal server error"})
}

// "validation error: cart_ids must not be empty" -> "cart_ids must not be empty"
func publicMessage(err error, target error) string {
	msg := err.Error()
	if p := target.Error() + ": "; strings.HasPrefix(msg, p) {
		return strings.TrimPrefix(msg, p)
	}
	return msg
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ReasonValidation, Message: msg})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		return 0, false
	}
	return id, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ReasonUnauthorized, Message: "unauthorized"})
}
