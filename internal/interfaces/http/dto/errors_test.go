package dto

import (
	"net/http"
	"testing"

	"github.com/money/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestCodeForDomainError(t *testing.T) {
	tests := []struct {
		domainCode string
		apiCode    string
		status     int
	}{
		{shared.CodeValidation, ErrCodeValidation, http.StatusBadRequest},
		{shared.CodeNotFound, ErrCodeNotFound, http.StatusNotFound},
		{shared.CodeConcurrencyConflict, ErrCodeConcurrencyConflict, http.StatusConflict},
		{shared.CodeAlreadyDeleted, ErrCodeAlreadyDeleted, http.StatusUnprocessableEntity},
		{shared.CodeNoOp, ErrCodeNoOp, http.StatusUnprocessableEntity},
		{shared.CodeCurrencyMismatch, ErrCodeCurrencyMismatch, http.StatusUnprocessableEntity},
		{shared.CodeCorruptHistory, ErrCodeInternal, http.StatusInternalServerError},
		{shared.CodeNoHandler, ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.domainCode, func(t *testing.T) {
			code := CodeForDomainError(tt.domainCode)
			assert.Equal(t, tt.apiCode, code)
			assert.Equal(t, tt.status, GetHTTPStatus(code))
		})
	}
}

func TestGetHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_WHATEVER"))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("bad", "req-1", []ValidationDetail{{Field: "amount", Message: "This field is required"}})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
