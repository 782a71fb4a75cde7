package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error to its status code. Client errors carry the error text;
// server errors are logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status int
	var sentinel error
	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient balance"})
		return
	case errors.Is(err, apperrors.ErrValidation):
		status, sentinel = http.StatusBadRequest, apperrors.ErrValidation
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, sentinel = http.StatusUnauthorized, apperrors.ErrUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status, sentinel = http.StatusForbidden, apperrors.ErrForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status, sentinel = http.StatusNotFound, apperrors.ErrNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status, sentinel = http.StatusConflict, apperrors.ErrDuplicate
	case errors.Is(err, apperrors.ErrConflict):
		status, sentinel = http.StatusConflict, apperrors.ErrConflict
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
		return
	}

	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: clientMessage(err, sentinel)})
}

// clientMessage drops the wrapping context in front of the sentinel, so
// "failed to load booking: resource not found: booking b1" becomes "booking b1".
func clientMessage(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	if strings.HasSuffix(msg, sentinel.Error()) {
		return sentinel.Error()
	}
	return msg
}

// bindError answers 400 for a request body or query that failed to bind.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// currentUser returns the authenticated caller. It answers 401 and returns false when missing.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
