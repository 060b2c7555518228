package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodePersistence, "storage operation failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage operation failed")
	assert.Equal(t, CodePersistence, Code(err))

	// A wrapped AppError is still recovered through fmt wrapping.
	outer := fmt.Errorf("handler: %w", err)
	assert.Equal(t, CodePersistence, Code(outer))
}

func TestShorthandConstructors(t *testing.T) {
	err := Validation("selected number must be numeric")
	assert.Equal(t, CodeValidation, Code(err))

	err = InvalidState("round is %s", "completed")
	assert.Equal(t, CodeInvalidState, Code(err))
	assert.Contains(t, err.Error(), "round is completed")
}

func TestCodeFallsBackToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, Code(stderrors.New("plain error")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInsufficientBalance, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInvalidState, http.StatusConflict},
		{CodeAlreadyUsed, http.StatusConflict},
		{CodeExpired, http.StatusConflict},
		{CodePersistence, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), "code %d", tt.code)
	}
}
