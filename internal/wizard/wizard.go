package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
	"github.com/adg88lu/FreeCalenderBooking/internal/entities"
)

// State is one step of the booking flow.
type State int

const (
	SelectingDate State = iota
	SelectingTime
	EnteringDetails
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case SelectingDate:
		return "selecting_date"
	case SelectingTime:
		return "selecting_time"
	case EnteringDetails:
		return "entering_details"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Submitter delivers the assembled booking request. The HTTP client and the
// in-process booking service both satisfy it.
type Submitter interface {
	SubmitBooking(ctx context.Context, req entities.BookingRequest) (*entities.BookingAck, error)
}

// Wizard drives the three-step booking flow for one visitor session: pick a
// date, pick a time, enter details, submit. Selection state is transient and
// lives only as long as the wizard instance. The wizard is cooperative
// single-session state and is not safe for concurrent use.
type Wizard struct {
	schedule  availability.Config
	submitter Submitter
	now       func() time.Time

	state   State
	date    time.Time
	slot    string
	name    string
	email   string
	lastErr error
	lastAck *entities.BookingAck
}

func New(schedule availability.Config, submitter Submitter, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{
		schedule:  schedule,
		submitter: submitter,
		now:       now,
		state:     SelectingDate,
	}
}

func (w *Wizard) State() State { return w.state }

// Err returns the failure recorded by the last submission attempt, if any.
func (w *Wizard) Err() error { return w.lastErr }

// Ack returns the acknowledgment of a completed submission.
func (w *Wizard) Ack() *entities.BookingAck { return w.lastAck }

// SelectedDate returns the chosen date and whether one has been chosen.
func (w *Wizard) SelectedDate() (time.Time, bool) {
	return w.date, w.state > SelectingDate
}

// SelectedTime returns the chosen slot and whether one has been chosen.
func (w *Wizard) SelectedTime() (string, bool) {
	return w.slot, w.state > SelectingTime
}

// SelectDate advances to time selection. Only dates the slot calculator marks
// bookable are accepted.
func (w *Wizard) SelectDate(date time.Time) error {
	if w.state != SelectingDate {
		return fmt.Errorf("cannot select a date while %s", w.state)
	}
	if !availability.IsDateBookable(date, w.schedule, w.now()) {
		return fmt.Errorf("date %s is not bookable", date.Format(availability.DateFormat))
	}
	w.date = date
	w.state = SelectingTime
	return nil
}

// SelectTime advances to detail entry. The slot must be one generated for the
// selected date.
func (w *Wizard) SelectTime(slot string) error {
	if w.state != SelectingTime {
		return fmt.Errorf("cannot select a time while %s", w.state)
	}
	if !availability.HasSlot(w.date, w.schedule, slot) {
		return fmt.Errorf("time %q is not an offered slot", slot)
	}
	w.slot = slot
	w.state = EnteringDetails
	return nil
}

// BackToDate returns from time selection to the calendar.
func (w *Wizard) BackToDate() error {
	if w.state != SelectingTime {
		return fmt.Errorf("cannot go back to the calendar while %s", w.state)
	}
	w.state = SelectingDate
	return nil
}

// BackToTime returns from detail entry to time selection.
func (w *Wizard) BackToTime() error {
	if w.state != EnteringDetails {
		return fmt.Errorf("cannot go back to time selection while %s", w.state)
	}
	w.state = SelectingTime
	return nil
}

// Submit assembles the booking request and hands it to the submitter. On
// success the wizard completes; on failure it returns to detail entry with
// the error recorded for display. Re-entry while a submission is in flight is
// rejected.
func (w *Wizard) Submit(ctx context.Context, name, email string) error {
	if w.state == Submitting {
		return fmt.Errorf("a submission is already in progress")
	}
	if w.state != EnteringDetails {
		return fmt.Errorf("cannot submit while %s", w.state)
	}
	if name == "" || email == "" {
		return fmt.Errorf("name and email are required")
	}

	w.name = name
	w.email = email
	w.state = Submitting
	w.lastErr = nil

	req := entities.BookingRequest{
		Name:  name,
		Email: email,
		Date:  w.date.Format(availability.DateFormat),
		Time:  w.slot,
	}

	ack, err := w.submitter.SubmitBooking(ctx, req)
	if err != nil {
		w.state = EnteringDetails
		w.lastErr = err
		return err
	}

	w.lastAck = ack
	w.state = Completed
	return nil
}

// Reset discards all selection state and restarts at date selection, the
// equivalent of reloading the page after a completed booking.
func (w *Wizard) Reset() {
	w.state = SelectingDate
	w.date = time.Time{}
	w.slot = ""
	w.name = ""
	w.email = ""
	w.lastErr = nil
	w.lastAck = nil
}
