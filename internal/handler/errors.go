package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/validate"
)

// ToHTTPStatus maps domain and repository errors to a response status.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalidFormat),
		errors.Is(err, validate.ErrOutOfRange),
		errors.Is(err, validate.ErrWrongVersion):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrUsernameExists),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorMessage returns the text sent to clients. Store failures are not
// echoed back.
func ToErrorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrEmailExists):
		return repository.ErrEmailExists.Error()
	case errors.Is(err, repository.ErrUsernameExists):
		return repository.ErrUsernameExists.Error()
	case errors.Is(err, repository.ErrConflict):
		return repository.ErrConflict.Error()
	}
	if ToHTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func (h *AuthorHandler) fail(c echo.Context, err error) error {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(status, echo.Map{"error": ToErrorMessage(err)})
}
