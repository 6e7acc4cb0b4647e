package mail

import (
	"context"
	"io"
	"log/slog"
)

// Message represents an email payload.
type Message struct {
	// From is an optional explicit sender; the implementation default is used when empty.
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	// TextBody and HTMLBody are sent as multipart/alternative when both are set.
	TextBody string
	HTMLBody string
}

// Recipients returns To, Cc and Bcc in one slice.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// Log is a Mail that only logs the envelope. Bodies are not logged.
type Log struct{}

// NewLog returns a Log mailer.
func NewLog() *Log { return &Log{} }

// Send logs the recipients and subject.
func (*Log) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "mail not sent, log driver active", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Close does nothing.
func (*Log) Close() error { return nil }
