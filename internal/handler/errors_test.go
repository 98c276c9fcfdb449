package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/validate"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: email", validate.ErrInvalidFormat), http.StatusBadRequest},
		{fmt.Errorf("author id: %w", validate.ErrWrongVersion), http.StatusBadRequest},
		{validate.ErrOutOfRange, http.StatusBadRequest},
		{repository.ErrAuthorNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: %w", repository.ErrUsernameExists, errors.New("UNIQUE constraint failed")), http.StatusConflict},
		{repository.ErrConflict, http.StatusConflict},
		{repository.ErrForbidden, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.err), tt.err.Error())
	}
}

func TestToErrorMessage(t *testing.T) {
	driver := errors.New("Error 1062: Duplicate entry 'x' for key 'authorEmail'")
	assert.Equal(t, "email already exists", ToErrorMessage(fmt.Errorf("%w: %w", repository.ErrEmailExists, driver)))
	assert.Equal(t, "internal server error", ToErrorMessage(errors.New("dial tcp: refused")))

	err := fmt.Errorf("%w: username must be no more than 32 characters", validate.ErrOutOfRange)
	assert.Equal(t, err.Error(), ToErrorMessage(err))
}

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, checkPassword("correct horse"))
	assert.ErrorIs(t, checkPassword(""), validate.ErrInvalidFormat)
	assert.ErrorIs(t, checkPassword("short"), validate.ErrOutOfRange)
}
