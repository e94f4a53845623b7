package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campsite/internal/reservations/validator"
	"campsite/pkg/clock"
	apperrors "campsite/pkg/errors"
	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

var handlerNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type mockReservationService struct {
	reserveFunc           func(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error)
	updateReservationFunc func(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error)
	cancelReservationFunc func(ctx context.Context, id string) error
	getAvailableDatesFunc func(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error)
}

func (m *mockReservationService) Reserve(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, email, arrivalDate, lengthOfStay)
	}
	return nil, nil
}

func (m *mockReservationService) UpdateReservation(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
	if m.updateReservationFunc != nil {
		return m.updateReservationFunc(ctx, id, arrivalDate, lengthOfStay)
	}
	return nil, nil
}

func (m *mockReservationService) CancelReservation(ctx context.Context, id string) error {
	if m.cancelReservationFunc != nil {
		return m.cancelReservationFunc(ctx, id)
	}
	return nil
}

func (m *mockReservationService) GetAvailableDates(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error) {
	if m.getAvailableDatesFunc != nil {
		return m.getAvailableDatesFunc(ctx, firstDay, lastDay)
	}
	return []time.Time{}, nil
}

func newTestRouter(svc *mockReservationService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"})
	h := NewReservationHandler(svc, validator.NewReservationValidator(log), clock.NewFixed(handlerNow), log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

const validID = "507f1f77bcf86cd799439011"

func TestAvailability(t *testing.T) {
	var gotFirst, gotLast time.Time
	svc := &mockReservationService{
		getAvailableDatesFunc: func(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error) {
			gotFirst, gotLast = firstDay, lastDay
			return []time.Time{
				time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reservations/availability?startDate=2026-07-10&endDate=2026-07-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !gotFirst.Equal(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected firstDay: %v", gotFirst)
	}
	if !gotLast.Equal(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected lastDay: %v", gotLast)
	}
	if !strings.Contains(rec.Body.String(), "2026-07-10") {
		t.Errorf("expected formatted dates in body, got %s", rec.Body.String())
	}
}

func TestAvailabilityDefaultsToOneMonthFromToday(t *testing.T) {
	var gotFirst, gotLast time.Time
	svc := &mockReservationService{
		getAvailableDatesFunc: func(ctx context.Context, firstDay, lastDay time.Time) ([]time.Time, error) {
			gotFirst, gotLast = firstDay, lastDay
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	today := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if !gotFirst.Equal(today) {
		t.Errorf("expected window starting today, got %v", gotFirst)
	}
	if !gotLast.Equal(today.AddDate(0, 1, 0)) {
		t.Errorf("expected window ending one month out, got %v", gotLast)
	}
}

func TestAvailabilityRejectsMalformedDates(t *testing.T) {
	router := newTestRouter(&mockReservationService{})

	tests := []struct {
		name string
		url  string
	}{
		{"bad startDate", "/api/reservations/availability?startDate=July-10"},
		{"bad endDate", "/api/reservations/availability?startDate=2026-07-10&endDate=15"},
		{"inverted range", "/api/reservations/availability?startDate=2026-07-15&endDate=2026-07-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateReservation(t *testing.T) {
	svc := &mockReservationService{
		reserveFunc: func(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
			return &model.Reservation{
				ID:       validID,
				Email:    email,
				Checkin:  arrivalDate,
				Checkout: arrivalDate.AddDate(0, 0, lengthOfStay),
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"email":"guest@example.com","arrivalDate":"2026-07-10","lengthOfStay":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data reservationResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != validID {
		t.Errorf("unexpected id: %s", resp.Data.ID)
	}
	if resp.Data.ArrivalDate != "2026-07-10" || resp.Data.DepartureDate != "2026-07-12" {
		t.Errorf("unexpected stay: %s to %s", resp.Data.ArrivalDate, resp.Data.DepartureDate)
	}
	if resp.Data.LengthOfStay != 2 {
		t.Errorf("unexpected length of stay: %d", resp.Data.LengthOfStay)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	router := newTestRouter(&mockReservationService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing email", `{"arrivalDate":"2026-07-10","lengthOfStay":2}`},
		{"bad email", `{"email":"nope","arrivalDate":"2026-07-10","lengthOfStay":2}`},
		{"bad date", `{"email":"guest@example.com","arrivalDate":"10.07.2026","lengthOfStay":2}`},
		{"zero nights", `{"email":"guest@example.com","arrivalDate":"2026-07-10"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateReservationConflict(t *testing.T) {
	svc := &mockReservationService{
		reserveFunc: func(ctx context.Context, email string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
			return nil, apperrors.Conflict("No places available for the selected dates")
		},
	}
	router := newTestRouter(svc)

	body := `{"email":"guest@example.com","arrivalDate":"2026-07-10","lengthOfStay":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No places available") {
		t.Errorf("expected conflict message, got %s", rec.Body.String())
	}
}

func TestUpdateReservation(t *testing.T) {
	var gotID string
	svc := &mockReservationService{
		updateReservationFunc: func(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
			gotID = id
			return &model.Reservation{
				ID:       id,
				Email:    "guest@example.com",
				Checkin:  arrivalDate,
				Checkout: arrivalDate.AddDate(0, 0, lengthOfStay),
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"arrivalDate":"2026-07-12","lengthOfStay":1}`
	req := httptest.NewRequest(http.MethodPut, "/api/reservations/"+validID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != validID {
		t.Errorf("unexpected id passed to service: %s", gotID)
	}
}

func TestUpdateReservationRejectsMalformedID(t *testing.T) {
	router := newTestRouter(&mockReservationService{})

	body := `{"arrivalDate":"2026-07-12","lengthOfStay":1}`
	req := httptest.NewRequest(http.MethodPut, "/api/reservations/not-an-id", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateReservationNotFound(t *testing.T) {
	svc := &mockReservationService{
		updateReservationFunc: func(ctx context.Context, id string, arrivalDate time.Time, lengthOfStay int) (*model.Reservation, error) {
			return nil, apperrors.NotFoundWithID("reservation", id)
		},
	}
	router := newTestRouter(svc)

	body := `{"arrivalDate":"2026-07-12","lengthOfStay":1}`
	req := httptest.NewRequest(http.MethodPut, "/api/reservations/"+validID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCancelReservation(t *testing.T) {
	var gotID string
	svc := &mockReservationService{
		cancelReservationFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/"+validID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotID != validID {
		t.Errorf("unexpected id passed to service: %s", gotID)
	}
}
