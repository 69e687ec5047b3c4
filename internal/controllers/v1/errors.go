package v1

import (
	"errors"
	"net/http"

	"github.com/grovesmith/backend/internal/auth"
	"github.com/grovesmith/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrGeneral), errors.Is(err, models.ErrStorage):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrMaxCausesExceeded), errors.Is(err, models.ErrAlreadyCompleted):
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errResetConfirmation = errors.New("the confirmation for the account reset was incorrect")
	errAmountsAndSplit   = errors.New("either the category amounts or equalSplit can be set, not both")
)
