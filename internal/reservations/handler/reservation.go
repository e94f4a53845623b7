package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campsite/internal/reservations/service"
	"campsite/internal/reservations/validator"
	"campsite/pkg/clock"
	apperrors "campsite/pkg/errors"
	httputil "campsite/pkg/http"
	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	service   service.ReservationService
	validator *validator.ReservationValidator
	clock     clock.Clock
	log       *logger.Logger
}

func NewReservationHandler(
	svc service.ReservationService,
	v *validator.ReservationValidator,
	clk clock.Clock,
	log *logger.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		service:   svc,
		validator: v,
		clock:     clk,
		log:       log,
	}
}

type reservationResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
	LengthOfStay  int    `json:"lengthOfStay"`
	Canceled      bool   `json:"canceled"`
}

func toResponse(r *model.Reservation) reservationResponse {
	return reservationResponse{
		ID:            r.ID,
		Email:         r.Email,
		ArrivalDate:   r.Checkin.Format(dateLayout),
		DepartureDate: r.Checkout.Format(dateLayout),
		LengthOfStay:  r.Nights(),
		Canceled:      r.Canceled,
	}
}

// Availability lists the free dates in the requested window. startDate
// defaults to today, endDate to one month after startDate.
func (h *ReservationHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	loc := h.clock.Location()

	firstDay := clock.Midnight(h.clock.Now(), loc)
	if s := query.Get("startDate"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid startDate: %s", s)))
			return
		}
		firstDay = parsed
	}

	lastDay := firstDay.AddDate(0, 1, 0)
	if s := query.Get("endDate"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid endDate: %s", s)))
			return
		}
		lastDay = parsed
	}

	if lastDay.Before(firstDay) {
		httputil.WriteError(w, apperrors.InvalidInput("endDate must be on or after startDate"))
		return
	}

	dates, err := h.service.GetAvailableDates(r.Context(), firstDay, lastDay)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}
	httputil.WriteSuccess(w, formatted)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	arrival, err := time.ParseInLocation(dateLayout, req.ArrivalDate, h.clock.Location())
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid arrivalDate: %s", req.ArrivalDate)))
		return
	}

	reservation, err := h.service.Reserve(r.Context(), req.Email, arrival, req.LengthOfStay)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, toResponse(reservation))
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.validator.ValidateID(id); err != nil {
		h.writeValidationError(w, err)
		return
	}

	var req model.ReservationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.validator.ValidateUpdate(&req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	arrival, err := time.ParseInLocation(dateLayout, req.ArrivalDate, h.clock.Location())
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid arrivalDate: %s", req.ArrivalDate)))
		return
	}

	reservation, err := h.service.UpdateReservation(r.Context(), id, arrival, req.LengthOfStay)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, toResponse(reservation))
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.validator.ValidateID(id); err != nil {
		h.writeValidationError(w, err)
		return
	}

	if err := h.service.CancelReservation(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) writeValidationError(w http.ResponseWriter, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		details := make(map[string]any, len(verrs))
		for _, verr := range verrs {
			details[verr.Field] = verr.Message
		}
		httputil.WriteError(w, apperrors.InvalidInput("Validation failed").WithDetails(details))
		return
	}
	h.log.Error("Unexpected validation failure", "error", err)
	httputil.WriteError(w, apperrors.Internal("An unexpected error occurred", err))
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/reservations/availability", h.Availability)
	router.POST("/api/reservations", h.Create)
	router.PUT("/api/reservations/:id", h.Update)
	router.DELETE("/api/reservations/:id", h.Cancel)
}
