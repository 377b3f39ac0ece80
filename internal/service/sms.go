package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender pings the operator's phone through Twilio. It is entirely
// optional: with incomplete credentials Enabled reports false and the booking
// flow skips it.
type SMSSender struct {
	accountSID string
	authToken  string
	fromNumber string
	toNumber   string
}

func NewSMSSender(accountSID, authToken, fromNumber, toNumber string) *SMSSender {
	return &SMSSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		toNumber:   toNumber,
	}
}

func (s *SMSSender) Enabled() bool {
	return s.accountSID != "" && s.authToken != "" && s.fromNumber != "" && s.toNumber != ""
}

func (s *SMSSender) Send(body string) error {
	if !s.Enabled() {
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(s.toNumber, "+") {
		log.Printf("Operator phone %q is not in E.164 format, SMS may fail", s.toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.accountSID,
		Password: s.authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to operator, message SID %s", *resp.Sid)
	}
	return nil
}
