package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
)

// Friday 2026-02-20.
var handlerNow = time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)

func newAvailabilityHandler() *AvailabilityHandler {
	schedule := availability.Config{
		Timezone:     "Europe/Berlin",
		Weekdays:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		DailyStart:   9,
		DailyEnd:     20,
		SlotDuration: 30,
		BlockedDates: []string{"2026-03-03"},
	}
	return NewAvailabilityHandler(schedule, func() time.Time { return handlerNow })
}

func TestMonth_ReturnsFullWeekGrid(t *testing.T) {
	h := newAvailabilityHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/availability?month=2026-03", nil)
	rec := httptest.NewRecorder()
	h.Month(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MonthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-03", resp.Month)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	// March 2026 runs Sunday the 1st through Tuesday the 31st: five full
	// weeks once padded to the enclosing Saturday.
	require.Len(t, resp.Days, 35)
	assert.Equal(t, "2026-03-01", resp.Days[0].Date)
	assert.Equal(t, "2026-04-04", resp.Days[34].Date)

	byDate := make(map[string]DayResponse, len(resp.Days))
	for _, d := range resp.Days {
		byDate[d.Date] = d
	}
	assert.True(t, byDate["2026-03-02"].Bookable, "Monday")
	assert.False(t, byDate["2026-03-03"].Bookable, "blocked Tuesday")
	assert.False(t, byDate["2026-03-07"].Bookable, "Saturday")
	assert.False(t, byDate["2026-04-01"].InMonth)
}

func TestMonth_DefaultsToCurrentMonth(t *testing.T) {
	h := newAvailabilityHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
	rec := httptest.NewRecorder()
	h.Month(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MonthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-02", resp.Month)
}

func TestMonth_RejectsMalformedMonth(t *testing.T) {
	h := newAvailabilityHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/availability?month=March", nil)
	rec := httptest.NewRecorder()
	h.Month(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlots_BookableDate(t *testing.T) {
	h := newAvailabilityHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-03-02", resp.Date)
	require.Len(t, resp.Slots, 23)
	assert.Equal(t, "09:00", resp.Slots[0])
	assert.Equal(t, "20:00", resp.Slots[22])
}

func TestSlots_CurrentDayWithClockWestOfUTC(t *testing.T) {
	schedule := availability.Config{
		Timezone:     "Europe/Berlin",
		Weekdays:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		DailyStart:   9,
		DailyEnd:     20,
		SlotDuration: 30,
	}
	// Monday 2026-03-02, 01:00 on a server clock five hours west of UTC.
	h := NewAvailabilityHandler(schedule, func() time.Time {
		return time.Date(2026, time.March, 2, 1, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "same-day must stay bookable")

	var resp SlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Slots, 23)
}

func TestSlots_UnbookableDateConflicts(t *testing.T) {
	h := newAvailabilityHandler()

	for _, date := range []string{
		"2026-03-07", // Saturday
		"2026-03-03", // blocked
		"2026-02-19", // past
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date="+date, nil)
		rec := httptest.NewRecorder()
		h.Slots(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code, "date %s", date)
	}
}

func TestSlots_RejectsMalformedDate(t *testing.T) {
	h := newAvailabilityHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=02.03.2026", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
