package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"FinSight/internal/domain/models"
	xhttp "FinSight/pkg/http"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{models.ErrDataUnavailable, http.StatusNotFound, "ERR_NOT_FOUND"},
		{fmt.Errorf("fetch: %w", models.ErrDataUnavailable), http.StatusNotFound, "ERR_NOT_FOUND"},
		{models.ErrInsufficientData, http.StatusUnprocessableEntity, "ERR_UNPROCESSABLE"},
		{models.ErrUnknownCategory, http.StatusBadGateway, "ERR_UPSTREAM"},
		{fmt.Errorf("classify: %w", models.ErrUnknownCategory), http.StatusBadGateway, "ERR_UPSTREAM"},
		{&xhttp.StatusError{Code: 500, Body: "boom"}, http.StatusBadGateway, "ERR_UPSTREAM"},
		{errors.New("anything else"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		got := mapDomainError(tt.err, "AAPL")
		var appErr *xhttp.AppError
		if !errors.As(got, &appErr) {
			t.Fatalf("mapDomainError(%v) returned %T, want *AppError", tt.err, got)
		}
		if appErr.Status != tt.wantStatus {
			t.Errorf("mapDomainError(%v) status = %d, want %d", tt.err, appErr.Status, tt.wantStatus)
		}
		if appErr.Code != tt.wantCode {
			t.Errorf("mapDomainError(%v) code = %q, want %q", tt.err, appErr.Code, tt.wantCode)
		}
		if !errors.Is(got, tt.err) {
			t.Errorf("mapDomainError(%v) lost the original error", tt.err)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	for _, period := range []string{"", "7d", "30d", "6mo", "2y"} {
		if err := validatePeriod(period); err != nil {
			t.Errorf("validatePeriod(%q) = %v, want nil", period, err)
		}
	}
	got := validatePeriod("abc")
	if got == nil {
		t.Fatal("validatePeriod(\"abc\") = nil, want error")
	}
	if got.Status != http.StatusBadRequest || got.Code != "ERR_BAD_REQUEST" {
		t.Errorf("validatePeriod(\"abc\") = %d %q, want 400 ERR_BAD_REQUEST", got.Status, got.Code)
	}
}
