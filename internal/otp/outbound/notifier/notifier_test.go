package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/mail"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type fakeMail struct {
	err  error
	sent []mail.Message
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeMail) Close() error { return nil }

type published struct {
	destination string
	msg         messaging.OutgoingMessage
}

type fakePublisher struct {
	err  error
	sent []published
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.sent = append(f.sent, published{destination: destination, msg: msg})
	return messaging.PublishResult{MessageID: "1"}, f.err
}

func newNotifier(t *testing.T) (*Notifier, *fakeMail, *fakePublisher) {
	t.Helper()

	m := &fakeMail{}
	p := &fakePublisher{}
	n, err := New(Config{AppName: "Astra", From: "no-reply@astra.dev"}, m, p, clock.NewFrozen(t0), instrument.NewNoop())
	require.NoError(t, err)

	return n, m, p
}

func TestNotifier_Email(t *testing.T) {
	n, m, p := newNotifier(t)
	to := entity.Contact{UserID: 7, Email: "jane@example.com", Name: "Jane"}

	ok := n.Send(context.Background(), to, "042917", entity.ChannelEmail, t0.Add(5*time.Minute))
	require.True(t, ok)
	assert.Empty(t, p.sent)

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Equal(t, "no-reply@astra.dev", msg.From)
	assert.Equal(t, "Your OTP Code - Astra", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong style=\"font-size: 24px; color: #007bff;\">042917</strong>")
	assert.Contains(t, msg.HTMLBody, "This code will expire in 5 minutes.")
	assert.Contains(t, msg.HTMLBody, "Hello Jane,")
	assert.Contains(t, msg.TextBody, "Your OTP code is: 042917")
	assert.Contains(t, msg.TextBody, "Astra Team")
}

func TestNotifier_EmailEscapesName(t *testing.T) {
	n, m, _ := newNotifier(t)

	ok := n.Send(context.Background(), entity.Contact{Email: "x@example.com", Name: "<b>x</b>"}, "000001", entity.ChannelEmail, t0.Add(time.Minute))
	require.True(t, ok)
	assert.NotContains(t, m.sent[0].HTMLBody, "<b>x</b>")
	assert.Contains(t, m.sent[0].HTMLBody, "expire in 1 minute.")
}

func TestNotifier_EmailFailure(t *testing.T) {
	n, m, _ := newNotifier(t)
	m.err = errors.New("smtp: 421 service not available")

	assert.False(t, n.Send(context.Background(), entity.Contact{Email: "jane@example.com"}, "123456", entity.ChannelEmail, t0.Add(time.Minute)))
	assert.False(t, n.Send(context.Background(), entity.Contact{}, "123456", entity.ChannelEmail, t0.Add(time.Minute)))
	assert.Len(t, m.sent, 1)
}

func TestNotifier_SMS(t *testing.T) {
	n, m, p := newNotifier(t)
	to := entity.Contact{UserID: 7, Phone: "+628123456789"}

	ok := n.Send(context.Background(), to, "123456", entity.ChannelSMS, t0.Add(5*time.Minute))
	require.True(t, ok)
	assert.Empty(t, m.sent)

	require.Len(t, p.sent, 1)
	assert.Equal(t, event.OTPSMSRequestedDestination, p.sent[0].destination)

	var body event.OTPSMSRequestedMessage
	require.NoError(t, json.Unmarshal(p.sent[0].msg.Body, &body))
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, "+628123456789", body.Phone)
	assert.Equal(t, "123456", body.Code)
	assert.True(t, t0.Add(5*time.Minute).Equal(body.ExpiresAt))
}

func TestNotifier_SMSFailures(t *testing.T) {
	n, _, p := newNotifier(t)

	assert.False(t, n.Send(context.Background(), entity.Contact{UserID: 7}, "123456", entity.ChannelSMS, t0))
	assert.Empty(t, p.sent)

	p.err = messaging.ErrClosed
	assert.False(t, n.Send(context.Background(), entity.Contact{Phone: "+62"}, "123456", entity.ChannelSMS, t0))
}

func TestNotifier_Authenticator(t *testing.T) {
	n, m, p := newNotifier(t)

	assert.False(t, n.Send(context.Background(), entity.Contact{Email: "a@b.c", Phone: "+62"}, "123456", entity.ChannelAuthenticator, t0))
	assert.Empty(t, m.sent)
	assert.Empty(t, p.sent)
}

func TestMinutesUntil(t *testing.T) {
	assert.Equal(t, 2, minutesUntil(t0, t0.Add(90*time.Second)))
	assert.Equal(t, 60, minutesUntil(t0, t0.Add(time.Hour)))
	assert.Zero(t, minutesUntil(t0, t0.Add(-time.Second)))
}
