package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{InvalidInput(ReasonInvalidDateTime, "bad input", nil), http.StatusBadRequest},
		{NotFound("doctor", nil), http.StatusNotFound},
		{BusinessRule(ReasonSlotConflict, "slot taken"), http.StatusUnprocessableEntity},
		{Unauthorized("nope", nil), http.StatusUnauthorized},
		{Storage("db down", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), tt.err.Message)
	}
}

func TestReasonSurvivesWrapping(t *testing.T) {
	err := BusinessRule(ReasonOutsideAvailability, "doctor available from 09:00:00 to 17:00:00")
	wrapped := fmt.Errorf("booking failed: %w", err)

	assert.Equal(t, ReasonOutsideAvailability, ReasonOf(wrapped))
	assert.Equal(t, CodeBusinessRule, CodeOf(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("row not found")
	err := NotFound("patient", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "patient not found")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeStorage, CodeOf(stderrors.New("boom")))
	assert.Equal(t, Reason(""), ReasonOf(stderrors.New("boom")))
}
