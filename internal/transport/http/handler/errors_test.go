package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{&domain.ValidationError{}, http.StatusBadRequest, errValidationFailed},
		{errInvalidBody, http.StatusBadRequest, errBadBody},
		{domain.ErrMissingCredentials, http.StatusBadRequest, errMissingCredentials},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, errInvalidCredentials},
		{domain.ErrTokenMissing, http.StatusUnauthorized, errTokenMissing},
		{domain.ErrTokenInvalid, http.StatusForbidden, errTokenInvalid},
		{fmt.Errorf("get job: %w", domain.ErrJobNotFound), http.StatusNotFound, errJobNotFound},
		{domain.ErrEmailTaken, http.StatusConflict, errEmailTaken},
		{errors.New("connection reset"), http.StatusInternalServerError, errInternalServer},
	}

	for _, tt := range tests {
		status, body := errorResponse(tt.err)
		if status != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, status, tt.wantStatus)
		}
		if body["error"] != tt.wantMsg {
			t.Errorf("%v: error = %v, want %q", tt.err, body["error"], tt.wantMsg)
		}
	}
}
