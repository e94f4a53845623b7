package validator

import (
	"strings"
	"testing"

	"campsite/pkg/logger"
	"campsite/pkg/model"
)

func newTestValidator() *ReservationValidator {
	log := logger.New(logger.Config{
		Level:   "info",
		Format:  logger.FormatJSON,
		Service: "test",
	})
	return NewReservationValidator(log)
}

func TestValidateReservationRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		req       model.ReservationRequest
		wantError bool
		wantField string
	}{
		{
			name: "valid request",
			req: model.ReservationRequest{
				Email:        "guest@example.com",
				ArrivalDate:  "2026-09-10",
				LengthOfStay: 2,
			},
			wantError: false,
		},
		{
			name: "missing email",
			req: model.ReservationRequest{
				ArrivalDate:  "2026-09-10",
				LengthOfStay: 2,
			},
			wantError: true,
			wantField: "Email",
		},
		{
			name: "malformed email",
			req: model.ReservationRequest{
				Email:        "not-an-email",
				ArrivalDate:  "2026-09-10",
				LengthOfStay: 2,
			},
			wantError: true,
			wantField: "Email",
		},
		{
			name: "bad date format",
			req: model.ReservationRequest{
				Email:        "guest@example.com",
				ArrivalDate:  "10/09/2026",
				LengthOfStay: 2,
			},
			wantError: true,
			wantField: "ArrivalDate",
		},
		{
			name: "missing arrival date",
			req: model.ReservationRequest{
				Email:        "guest@example.com",
				LengthOfStay: 2,
			},
			wantError: true,
			wantField: "ArrivalDate",
		},
		{
			name: "zero length of stay",
			req: model.ReservationRequest{
				Email:       "guest@example.com",
				ArrivalDate: "2026-09-10",
			},
			wantError: true,
			wantField: "LengthOfStay",
		},
		{
			name: "negative length of stay",
			req: model.ReservationRequest{
				Email:        "guest@example.com",
				ArrivalDate:  "2026-09-10",
				LengthOfStay: -1,
			},
			wantError: true,
			wantField: "LengthOfStay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !strings.Contains(err.Error(), tt.wantField) {
					t.Errorf("expected error for field %s, got: %v", tt.wantField, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateID("507f1f77bcf86cd799439011"); err != nil {
		t.Errorf("unexpected error for valid ObjectID: %v", err)
	}
	if err := v.ValidateID("not-an-id"); err == nil {
		t.Error("expected error for malformed id")
	}
	if err := v.ValidateID(""); err == nil {
		t.Error("expected error for empty id")
	}
}
