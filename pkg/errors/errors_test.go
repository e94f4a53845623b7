package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("store unavailable", cause)

	if !strings.Contains(err.Error(), "INTERNAL_ERROR") {
		t.Errorf("expected code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
}

func TestConstructorsMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Reservation"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("no places available"), CodeConflict, http.StatusConflict},
		{"invalid input", InvalidInput("bad date"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("invalid payload", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("lock wait"), CodeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithIDCarriesDetails(t *testing.T) {
	err := NotFoundWithID("Reservation", "abc123")

	if err.Details["id"] != "abc123" {
		t.Errorf("expected id detail, got %v", err.Details)
	}
	if err.Details["resource"] != "Reservation" {
		t.Errorf("expected resource detail, got %v", err.Details)
	}
}

func TestAsAppErrorWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("boom")

	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected internal code, got %s", appErr.Code)
	}

	conflict := Conflict("busy")
	if AsAppError(conflict) != conflict {
		t.Error("expected AsAppError to return the same *AppError")
	}
}
