package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeenergy/server/internal/auth"
	"homeenergy/server/internal/database"
	"homeenergy/server/internal/prediction"
	"homeenergy/server/internal/queue"
	"homeenergy/server/internal/views"
)

// statusFor maps domain errors to an HTTP status and a client-facing message.
// An empty message means the caller's generic message is used.
func statusFor(err error) (int, string) {
	var verr *views.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, auth.ErrInvalidSignUp):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized, "Not signed in"
	case errors.Is(err, views.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict, "Email or phone already registered"
	case errors.Is(err, database.ErrDuplicate):
		return http.StatusConflict, "Record already exists"
	case errors.Is(err, context.Canceled):
		return http.StatusConflict, "Request superseded by a newer refresh"
	case errors.Is(err, prediction.ErrPredictionFailed):
		return http.StatusBadGateway, "Prediction service unavailable"
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed), errors.Is(err, views.ErrUnavailable):
		return http.StatusServiceUnavailable, ""
	}
	return http.StatusInternalServerError, ""
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	status, clientMessage := statusFor(err)
	if clientMessage == "" {
		clientMessage = message
	}

	entry := h.logger.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
	c.JSON(status, gin.H{"error": clientMessage})
}
