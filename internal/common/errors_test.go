package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundError("record missing")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInputError("bad id")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewAppError("DECODE_FAILED", "no text layer", ErrDecode)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFoundError("record missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Contains(t, appErr.Error(), "record missing")
}
