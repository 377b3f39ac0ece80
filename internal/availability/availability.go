package availability

import (
	"fmt"
	"time"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Config describes the provider's weekly booking pattern: which weekdays are
// open, the daily hour range, the slot step and any explicitly blocked dates.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Timezone     string
	Weekdays     []time.Weekday
	DailyStart   int
	DailyEnd     int
	SlotDuration int
	BlockedDates []string
}

func (c Config) Validate() error {
	if c.DailyStart < 0 || c.DailyStart > 23 {
		return fmt.Errorf("daily start hour %d out of range 0-23", c.DailyStart)
	}
	if c.DailyEnd < 0 || c.DailyEnd > 23 {
		return fmt.Errorf("daily end hour %d out of range 0-23", c.DailyEnd)
	}
	if c.DailyStart >= c.DailyEnd {
		return fmt.Errorf("daily start hour %d must be before end hour %d", c.DailyStart, c.DailyEnd)
	}
	if c.SlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive, got %d", c.SlotDuration)
	}
	if len(c.Weekdays) == 0 {
		return fmt.Errorf("at least one bookable weekday is required")
	}
	for _, wd := range c.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday %d", wd)
		}
	}
	for _, d := range c.BlockedDates {
		if _, err := time.Parse(DateFormat, d); err != nil {
			return fmt.Errorf("invalid blocked date %q: %w", d, err)
		}
	}
	return nil
}

// WeekdayOpen reports whether the given weekday is part of the weekly pattern.
func (c Config) WeekdayOpen(wd time.Weekday) bool {
	for _, open := range c.Weekdays {
		if open == wd {
			return true
		}
	}
	return false
}

// DateBlocked reports whether the date is on the explicit blocklist.
func (c Config) DateBlocked(date time.Time) bool {
	key := date.Format(DateFormat)
	for _, blocked := range c.BlockedDates {
		if blocked == key {
			return true
		}
	}
	return false
}

// IsDateBookable reports whether a booking may be made on the given calendar
// date. The reference time is passed in explicitly so callers (and tests)
// control what "today" means. Past dates are never bookable, same-day is.
// Days are compared as calendar dates: date and now may carry different
// locations (parsed dates are UTC, the clock is the server's local zone),
// so comparing them as instants would shift "today" across zones.
func IsDateBookable(date time.Time, cfg Config, now time.Time) bool {
	if date.Format(DateFormat) < now.Format(DateFormat) {
		return false
	}
	if !cfg.WeekdayOpen(date.Weekday()) {
		return false
	}
	if cfg.DateBlocked(date) {
		return false
	}
	return true
}

// GenerateTimeSlots returns every HH:mm slot for the given date, stepping from
// the daily start hour by the configured duration. The loop bound is
// inclusive, so the closing hour itself is offered when the step lands on it
// exactly. The caller is expected to have checked IsDateBookable already.
//
// Every slot is always offered: there is no booking store to subtract
// already-taken slots from. The operator reconciles their own calendar.
func GenerateTimeSlots(date time.Time, cfg Config) []string {
	current := time.Date(date.Year(), date.Month(), date.Day(), cfg.DailyStart, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), cfg.DailyEnd, 0, 0, 0, date.Location())

	var slots []string
	for !current.After(end) {
		slots = append(slots, current.Format(TimeFormat))
		current = current.Add(time.Duration(cfg.SlotDuration) * time.Minute)
	}
	return slots
}

// HasSlot reports whether the given HH:mm value is one of the slots generated
// for the date.
func HasSlot(date time.Time, cfg Config, slot string) bool {
	for _, s := range GenerateTimeSlots(date, cfg) {
		if s == slot {
			return true
		}
	}
	return false
}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
