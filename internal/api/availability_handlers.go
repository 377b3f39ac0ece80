package api

import (
	"net/http"
	"time"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
	"github.com/adg88lu/FreeCalenderBooking/internal/errors"
)

const monthFormat = "2006-01"

type AvailabilityHandler struct {
	Schedule availability.Config
	Now      func() time.Time
}

func NewAvailabilityHandler(schedule availability.Config, now func() time.Time) *AvailabilityHandler {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityHandler{Schedule: schedule, Now: now}
}

// Month handles GET /api/availability?month=YYYY-MM and returns the full-week
// calendar grid for the requested month (current month when omitted).
func (h *AvailabilityHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := h.Now()

	ref := now
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse(monthFormat, raw)
		if err != nil {
			httpErr := errors.ErrBadRequest("month must be in YYYY-MM form")
			writeError(w, httpErr.Code, httpErr.Message)
			return
		}
		ref = parsed
	}

	grid := availability.MonthGrid(ref, h.Schedule, now)
	resp := MonthResponse{
		Month:    time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).Format(monthFormat),
		Timezone: h.Schedule.Timezone,
		Days:     make([]DayResponse, 0, len(grid)),
	}
	for _, day := range grid {
		resp.Days = append(resp.Days, DayResponse{
			Date:     day.Date.Format(availability.DateFormat),
			InMonth:  day.InMonth,
			Bookable: day.Bookable,
			Today:    day.Today,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Slots handles GET /api/availability/slots?date=YYYY-MM-DD and returns the
// slot list for a bookable date.
func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	date, err := time.Parse(availability.DateFormat, raw)
	if err != nil {
		httpErr := errors.ErrBadRequest("date must be in YYYY-MM-DD form")
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}

	if !availability.IsDateBookable(date, h.Schedule, h.Now()) {
		httpErr := errors.ErrConflict("date is not bookable")
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}

	writeJSON(w, http.StatusOK, SlotsResponse{
		Date:     date.Format(availability.DateFormat),
		Timezone: h.Schedule.Timezone,
		Slots:    availability.GenerateTimeSlots(date, h.Schedule),
	})
}
