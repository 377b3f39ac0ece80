package api

import (
	"encoding/json"
	"net/http"

	"github.com/adg88lu/FreeCalenderBooking/internal/entities"
	"github.com/adg88lu/FreeCalenderBooking/internal/errors"
	"github.com/adg88lu/FreeCalenderBooking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// Book handles POST /api/book. The payload shape is trusted as the form
// already enforces required fields client-side; anything that goes wrong is
// surfaced as a server error with the raw detail, matching the submission
// contract (a booking either fully succeeds or fully fails).
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpErr := errors.ErrInternal(err.Error())
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}

	ack, err := h.Service.SubmitBooking(r.Context(), req)
	if err != nil {
		httpErr := errors.ErrInternal(err.Error())
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Error: detail})
}
