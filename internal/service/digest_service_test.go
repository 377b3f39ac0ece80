package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
)

func testSchedule() availability.Config {
	return availability.Config{
		Timezone:     "Europe/Berlin",
		Weekdays:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		DailyStart:   9,
		DailyEnd:     20,
		SlotDuration: 30,
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSendDailyDigest_OpenDay(t *testing.T) {
	sender := &fakeSender{ack: &Ack{StatusCode: 202}}
	// Monday 2026-03-02.
	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	svc := NewDigestService(testSchedule(), testNotify(), sender, fixedNow(now))

	require.NoError(t, svc.SendDailyDigest(context.Background()))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Availability digest for 2026-03-02", msg.Subject)
	assert.Equal(t, "operator@example.com", msg.ToEmail)
	assert.Contains(t, msg.PlainBody, "23 slots from 09:00 to 20:00")
	assert.Contains(t, msg.HTMLBody, "open today")
}

func TestSendDailyDigest_ClosedDay(t *testing.T) {
	sender := &fakeSender{ack: &Ack{StatusCode: 202}}
	// Saturday 2026-03-07.
	now := time.Date(2026, time.March, 7, 7, 0, 0, 0, time.UTC)
	svc := NewDigestService(testSchedule(), testNotify(), sender, fixedNow(now))

	require.NoError(t, svc.SendDailyDigest(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].PlainBody, "closed")
	assert.Contains(t, sender.sent[0].HTMLBody, "closed today")
}

func TestSendDailyDigest_BlockedDayIsClosed(t *testing.T) {
	schedule := testSchedule()
	schedule.BlockedDates = []string{"2026-03-03"}
	sender := &fakeSender{ack: &Ack{StatusCode: 202}}
	// Tuesday 2026-03-03, explicitly blocked.
	now := time.Date(2026, time.March, 3, 7, 0, 0, 0, time.UTC)
	svc := NewDigestService(schedule, testNotify(), sender, fixedNow(now))

	require.NoError(t, svc.SendDailyDigest(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].PlainBody, "closed")
}

func TestSendDailyDigest_TestModeLogsOnly(t *testing.T) {
	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	svc := NewDigestService(testSchedule(), testNotify(), nil, fixedNow(now))

	assert.NoError(t, svc.SendDailyDigest(context.Background()))
}

func TestSendDailyDigest_SendFailureReturned(t *testing.T) {
	sender := &fakeSender{err: &ProviderError{StatusCode: 500, Body: "unavailable"}}
	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	svc := NewDigestService(testSchedule(), testNotify(), sender, fixedNow(now))

	err := svc.SendDailyDigest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send daily digest")
}
