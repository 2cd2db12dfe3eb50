package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitly/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/infra/logger"
)

// handleError maps domain errors to an ErrorResponse.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrHabitNameTooLong),
		errors.Is(err, domain.ErrHabitDescTooLong),
		errors.Is(err, domain.ErrInvalidPeriodicity),
		errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidEvent),
		errors.Is(err, domain.ErrInvalidUserName),
		errors.Is(err, domain.ErrPasswordTooShort):
		middleware.AbortMessage(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		middleware.AbortMessage(c, http.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, domain.ErrUnauthorized):
		middleware.AbortMessage(c, http.StatusForbidden, "unauthorized access")

	case errors.Is(err, domain.ErrHabitNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		middleware.AbortMessage(c, http.StatusNotFound, "resource not found")

	case errors.Is(err, domain.ErrHabitConflict):
		middleware.Abort(c, http.StatusConflict, middleware.ErrorResponse{
			Error:   "version conflict",
			Message: "habit has been modified elsewhere, reload it",
		})

	case errors.Is(err, domain.ErrHabitAlreadyExists),
		errors.Is(err, domain.ErrUserAlreadyExists):
		middleware.AbortMessage(c, http.StatusConflict, err.Error())

	default:
		_ = c.Error(err)
		logger.Log.WithError(err).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
		middleware.AbortMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

// currentUser reads the id set by the auth middleware and aborts the
// request when it is missing.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		middleware.AbortMessage(c, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

func bindError(c *gin.Context, err error) {
	middleware.Abort(c, http.StatusBadRequest, middleware.ErrorResponse{
		Error:   "invalid request body",
		Details: err.Error(),
	})
}
