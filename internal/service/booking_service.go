package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
	"github.com/adg88lu/FreeCalenderBooking/internal/config"
	"github.com/adg88lu/FreeCalenderBooking/internal/entities"
	"github.com/adg88lu/FreeCalenderBooking/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const prettyDateFormat = "Monday, 2 January 2006"

// BookingService turns a submitted booking request into an operator
// notification. With no Sender configured it runs in test mode: the payload
// is logged and the submission reported as successful without any network
// call.
type BookingService struct {
	notify   config.Notify
	timezone string
	sender   Sender
	sms      *SMSSender
	metrics  *metrics.Metrics
}

func NewBookingService(notify config.Notify, timezone string, sender Sender, sms *SMSSender, m *metrics.Metrics) *BookingService {
	return &BookingService{
		notify:   notify,
		timezone: timezone,
		sender:   sender,
		sms:      sms,
		metrics:  m,
	}
}

// SubmitBooking handles one booking request end to end. The returned error is
// either a *ProviderError from the email provider or a transport failure;
// both mean the submission failed as a whole.
func (s *BookingService) SubmitBooking(ctx context.Context, req entities.BookingRequest) (*entities.BookingAck, error) {
	s.metrics.BookingsReceived.Inc()

	if s.sender == nil {
		log.Printf("No email credential configured, logging booking instead: name=%q email=%q date=%s time=%s",
			req.Name, req.Email, req.Date, req.Time)
		s.metrics.TestModeSubmissions.Inc()
		return &entities.BookingAck{Success: true, Mode: "test"}, nil
	}

	msg, err := s.composeNotification(req)
	if err != nil {
		return nil, err
	}

	ack, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.metrics.ProviderFailures.Inc()
		return nil, err
	}
	s.metrics.EmailsSent.Inc()

	if s.sms != nil && s.sms.Enabled() {
		smsBody := fmt.Sprintf("New booking: %s on %s at %s. Details in your email.", req.Name, req.Date, req.Time)
		if err := s.sms.Send(smsBody); err != nil {
			// The booking already succeeded, an SMS failure only gets logged.
			log.Printf("Booking notified by email but SMS failed: %v", err)
		}
	}

	return &entities.BookingAck{Success: true, MessageID: ack.MessageID}, nil
}

func (s *BookingService) composeNotification(req entities.BookingRequest) (Message, error) {
	dateFormatted := req.Date
	if parsed, err := time.Parse(availability.DateFormat, req.Date); err == nil {
		dateFormatted = parsed.Format(prettyDateFormat)
	}

	data := entities.BookingEmailData{
		Name:          req.Name,
		Email:         req.Email,
		DateFormatted: dateFormatted,
		Time:          req.Time,
		Timezone:      s.timezone,
	}

	var htmlBody bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&htmlBody, "booking_email.html", data); err != nil {
		return Message{}, fmt.Errorf("render booking email: %w", err)
	}

	plainBody := fmt.Sprintf(
		"New booking received.\n\n"+
			"%s (%s) has booked a meeting with you.\n\n"+
			"Date: %s\n"+
			"Time: %s (%s)\n",
		data.Name, data.Email, data.DateFormatted, data.Time, data.Timezone,
	)

	return Message{
		FromEmail: s.notify.FromEmail,
		FromName:  s.notify.FromName,
		ToEmail:   s.notify.OperatorEmail,
		ToName:    s.notify.OperatorName,
		Subject:   fmt.Sprintf("New Booking: %s on %s", req.Name, req.Date),
		PlainBody: plainBody,
		HTMLBody:  htmlBody.String(),
	}, nil
}
