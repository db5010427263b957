package http

import (
	"errors"
	"net/http"

	"inkwell/pkg/apperr"
)

// errorStatus maps the gateway error taxonomy onto HTTP status codes.
// Anything unclassified surfaces as a 500.
func errorStatus(err error) int {
	var (
		authErr      *apperr.AuthenticationError
		accountErr   *apperr.AccountCreationError
		nfErr        *apperr.NotFoundError
		forbiddenErr *apperr.ForbiddenError
		storageErr   *apperr.StorageError
	)

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &accountErr):
		return http.StatusConflict
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &storageErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
