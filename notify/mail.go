package notify

import (
	"bytes"
	"fmt"
	"io"
	"net/smtp"

	"github.com/etnz/rentbook/config"
	"github.com/jordan-wright/email"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Mailer sends a markdown message.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer sends messages through an SMTP server, with a plain text and
// an HTML part.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer returns a mailer on the configured server.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	e, err := newEmail(m.cfg.From, to, subject, body)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := e.Send(m.cfg.Addr(), auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// newEmail builds the message: the markdown is the text part, and its HTML
// rendering the HTML part.
func newEmail(from string, to []string, subject, body string) (*email.Email, error) {
	var html bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(body), &html); err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}
	e := email.NewEmail()
	e.From = from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)
	e.HTML = html.Bytes()
	return e, nil
}

// WriterMailer prints the messages instead of sending them.
type WriterMailer struct {
	W io.Writer
}

func (m WriterMailer) Send(to []string, subject, body string) error {
	_, err := fmt.Fprintf(m.W, "To: %v\nSubject: %s\n\n%s\n", to, subject, body)
	return err
}
