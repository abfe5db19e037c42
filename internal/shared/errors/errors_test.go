package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", apperrors.Validation("Please fill in all fields", "amount"), apperrors.ErrCodeValidation},
		{"not found", &apperrors.HTTPError{Status: http.StatusNotFound}, apperrors.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("fetch entry: %w", &apperrors.HTTPError{Status: 404}), apperrors.ErrCodeNotFound},
		{"server error", &apperrors.HTTPError{Status: 500}, apperrors.ErrCodeHTTP},
		{"network", &apperrors.NetworkError{Method: "GET", URL: "http://x", Err: context.DeadlineExceeded}, apperrors.ErrCodeNetwork},
		{"app error", apperrors.InvalidArgument("bad id"), apperrors.ErrCodeInvalidArg},
		{"plain", stderrors.New("boom"), apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.Code(tt.err))
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &apperrors.NetworkError{Method: "GET", URL: "http://x/entries", Err: context.Canceled}
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "GET http://x/entries")
}

func TestHTTPError_Message(t *testing.T) {
	err := &apperrors.HTTPError{Method: "PUT", URL: "http://x/entries/1", Status: 422, Body: "{\"error\":\"bad\"}\n"}
	assert.Equal(t, `http error: PUT http://x/entries/1: status 422: {"error":"bad"}`, err.Error())
	assert.Equal(t, 422, apperrors.StatusCode(err))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "Please fill in all fields (amount, name)",
		apperrors.Validation("Please fill in all fields", "amount", "name").Error())
	assert.Equal(t, "name is required", apperrors.Validation("name is required").Error())
}

func TestAppError_Wrap(t *testing.T) {
	inner := stderrors.New("disk full")
	err := apperrors.Wrap(inner, apperrors.ErrCodeConfig, "load currencies")
	assert.ErrorIs(t, err, inner)
	assert.Same(t, err, apperrors.GetAppError(fmt.Errorf("initialize client: %w", err)))
	assert.Equal(t, apperrors.ErrCodeConfig, apperrors.Code(err))
	assert.Equal(t, "CONFIG_ERROR: load currencies: disk full", err.Error())
}
