package v1

import (
	"errors"
	"net/http"

	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/models"
)

// status translates an error into the HTTP status code of the response.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNotAuthenticated) ||
		errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, models.ErrNotAuthorized) {
		return http.StatusForbidden
	}

	if errors.Is(err, models.ErrHandleTaken) ||
		errors.Is(err, models.ErrEmailTaken) ||
		errors.Is(err, models.ErrAlreadyInHousehold) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
