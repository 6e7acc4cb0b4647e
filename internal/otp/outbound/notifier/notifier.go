// Package notifier delivers freshly issued codes: email through the mail
// client, SMS as an event for the gateway consumer. Authenticator codes have
// no out-of-band delivery.
package notifier

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	htmltemplate "html/template"
	"log/slog"
	"math"
	texttemplate "text/template"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/mail"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

//go:embed templates/*
var templates embed.FS

type Config struct {
	// AppName appears in the subject and the signature.
	AppName string
	// From overrides the mail client's default sender.
	From string
}

type Notifier struct {
	mail      mail.Mail
	publisher messaging.Publisher
	clock     clock.Clocker
	ins       instrument.Instrumentation
	cfg       Config
	html      *htmltemplate.Template
	text      *texttemplate.Template
}

func New(cfg Config, m mail.Mail, publisher messaging.Publisher, clk clock.Clocker, ins instrument.Instrumentation) (*Notifier, error) {
	if cfg.AppName == "" {
		cfg.AppName = "Astra"
	}

	html, err := htmltemplate.New("otp_email.html").Option("missingkey=zero").ParseFS(templates, "templates/otp_email.html")
	if err != nil {
		return nil, err
	}

	text, err := texttemplate.New("otp_email.txt").Option("missingkey=zero").ParseFS(templates, "templates/otp_email.txt")
	if err != nil {
		return nil, err
	}

	return &Notifier{
		mail:      m,
		publisher: publisher,
		clock:     clk,
		ins:       ins,
		cfg:       cfg,
		html:      html,
		text:      text,
	}, nil
}

// Send reports whether the code left the service. It never returns an error;
// failures are logged and recorded on the span.
func (n *Notifier) Send(ctx context.Context, to entity.Contact, code string, ch entity.Channel, expiresAt time.Time) bool {
	ctx, span := n.ins.Tracer("otp.outbound.notifier").Start(ctx, "Send")
	defer span.End()
	span.SetAttributes(attribute.String("otp.channel", ch.String()))

	var err error
	switch ch {
	case entity.ChannelEmail:
		err = n.sendEmail(ctx, to, code, expiresAt)
	case entity.ChannelSMS:
		err = n.publishSMS(ctx, to, code, expiresAt)
	default:
		return false
	}

	if err != nil {
		n.fail(ctx, span, ch, err)
		return false
	}

	return true
}

type emailData struct {
	AppName string
	Name    string
	Code    string
	Minutes int
}

func (n *Notifier) sendEmail(ctx context.Context, to entity.Contact, code string, expiresAt time.Time) error {
	if to.Email == "" {
		return errNoAddress
	}

	data := emailData{
		AppName: n.cfg.AppName,
		Name:    to.Name,
		Code:    code,
		Minutes: minutesUntil(n.clock.Now(), expiresAt),
	}

	var html, text bytes.Buffer
	if err := n.html.Execute(&html, data); err != nil {
		return err
	}
	if err := n.text.Execute(&text, data); err != nil {
		return err
	}

	return n.mail.Send(ctx, mail.Message{
		From:     n.cfg.From,
		To:       []string{to.Email},
		Subject:  "Your OTP Code - " + n.cfg.AppName,
		TextBody: text.String(),
		HTMLBody: html.String(),
	})
}

func (n *Notifier) publishSMS(ctx context.Context, to entity.Contact, code string, expiresAt time.Time) error {
	if to.Phone == "" {
		return errNoAddress
	}

	body, err := json.Marshal(event.OTPSMSRequestedMessage{
		UserID:    to.UserID,
		Phone:     to.Phone,
		Code:      code,
		ExpiresAt: expiresAt.UTC(),
	})
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = n.publisher.Publish(ctx, event.OTPSMSRequestedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	})
	return err
}

func (n *Notifier) fail(ctx context.Context, span trace.Span, ch entity.Channel, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.ErrorContext(ctx, "failed to deliver otp", "channel", ch.String(), "error", err)
}

// minutesUntil rounds up so a 90 second code reads "2 minutes".
func minutesUntil(now, expiresAt time.Time) int {
	d := expiresAt.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Minutes()))
}
