package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
	"github.com/adg88lu/FreeCalenderBooking/internal/config"
	"github.com/adg88lu/FreeCalenderBooking/internal/entities"
)

// DigestService emails the operator a morning summary of the current day's
// availability. It reuses the same Sender as the booking flow, so without a
// credential it degrades to logging like everything else.
type DigestService struct {
	schedule availability.Config
	notify   config.Notify
	sender   Sender
	now      func() time.Time
}

func NewDigestService(schedule availability.Config, notify config.Notify, sender Sender, now func() time.Time) *DigestService {
	if now == nil {
		now = time.Now
	}
	return &DigestService{
		schedule: schedule,
		notify:   notify,
		sender:   sender,
		now:      now,
	}
}

// SendDailyDigest composes and sends the digest for today.
func (s *DigestService) SendDailyDigest(ctx context.Context) error {
	now := s.now()
	today := availability.StartOfDay(now)

	data := entities.DigestEmailData{
		DateFormatted: today.Format(prettyDateFormat),
		Open:          availability.IsDateBookable(today, s.schedule, now),
		Timezone:      s.schedule.Timezone,
	}
	if data.Open {
		slots := availability.GenerateTimeSlots(today, s.schedule)
		data.SlotCount = len(slots)
		data.FirstSlot = slots[0]
		data.LastSlot = slots[len(slots)-1]
	}

	if s.sender == nil {
		log.Printf("No email credential configured, digest for %s: open=%t slots=%d",
			today.Format(availability.DateFormat), data.Open, data.SlotCount)
		return nil
	}

	msg, err := s.composeDigest(today, data)
	if err != nil {
		return err
	}
	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send daily digest: %w", err)
	}
	return nil
}

func (s *DigestService) composeDigest(today time.Time, data entities.DigestEmailData) (Message, error) {
	var htmlBody bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&htmlBody, "digest_email.html", data); err != nil {
		return Message{}, fmt.Errorf("render digest email: %w", err)
	}

	var plainBody string
	if data.Open {
		plainBody = fmt.Sprintf("Availability for %s: %d slots from %s to %s (%s).\n",
			data.DateFormatted, data.SlotCount, data.FirstSlot, data.LastSlot, data.Timezone)
	} else {
		plainBody = fmt.Sprintf("The calendar is closed on %s.\n", data.DateFormatted)
	}

	return Message{
		FromEmail: s.notify.FromEmail,
		FromName:  s.notify.FromName,
		ToEmail:   s.notify.OperatorEmail,
		ToName:    s.notify.OperatorName,
		Subject:   fmt.Sprintf("Availability digest for %s", today.Format(availability.DateFormat)),
		PlainBody: plainBody,
		HTMLBody:  htmlBody.String(),
	}, nil
}
