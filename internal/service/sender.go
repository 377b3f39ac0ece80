package service

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is one outbound notification email.
type Message struct {
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Ack is the provider's acknowledgment of an accepted message.
type Ack struct {
	MessageID  string
	StatusCode int
}

// ProviderError is a rejection from the email provider, carrying whatever
// detail it returned. It is surfaced to the caller as-is, never retried.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider returned status %d: %s", e.StatusCode, e.Body)
}

// Sender is the email capability the booking service depends on. Keeping it
// an interface lets the delivery mechanism (SendGrid, SMTP, a fake in tests)
// be swapped without touching the submission flow.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Ack, error)
}

// SendGridSender sends through the SendGrid v3 mail API.
type SendGridSender struct {
	apiKey string
}

func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) (*Ack, error) {
	from := mail.NewEmail(msg.FromName, msg.FromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainBody, msg.HTMLBody)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("sendgrid request failed: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: response.StatusCode, Body: response.Body}
	}

	ack := &Ack{StatusCode: response.StatusCode}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		ack.MessageID = ids[0]
	}
	log.Printf("Email sent to %s (subject: %s), status %d", msg.ToEmail, msg.Subject, response.StatusCode)
	return ack, nil
}
