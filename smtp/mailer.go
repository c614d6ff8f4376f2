// Package smtp sends report emails over authenticated, TLS-protected SMTP.
package smtp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/cfpwatch"
	"github.com/wneessen/go-mail"
)

// Ensure Mailer implements cfpwatch.Mailer.
var _ cfpwatch.Mailer = (*Mailer)(nil)

// Defaults for Config.
const (
	DefaultPort    = 587
	DefaultTimeout = 30 * time.Second
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Validate returns an error if the config contains invalid fields.
func (c Config) Validate() error {
	if c.Host == "" {
		return cfpwatch.Errorf(cfpwatch.EINVALID, "SMTP host required")
	}
	if c.From == "" {
		return cfpwatch.Errorf(cfpwatch.EINVALID, "SMTP sender address required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return cfpwatch.Errorf(cfpwatch.EINVALID, "invalid SMTP port %d", c.Port)
	}
	return nil
}

// Sender delivers built messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer implements cfpwatch.Mailer.
type Mailer struct {
	from   string
	sender Sender
}

// NewMailer creates a Mailer that requires TLS and authenticates with
// SMTP AUTH PLAIN when a username is configured.
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return NewMailerWithSender(cfg.From, client), nil
}

// NewMailerWithSender creates a Mailer that hands messages to sender.
func NewMailerWithSender(from string, sender Sender) *Mailer {
	return &Mailer{from: from, sender: sender}
}

// Send builds msg and delivers it.
func (m *Mailer) Send(ctx context.Context, msg *cfpwatch.Message) error {
	built, err := m.Build(msg)
	if err != nil {
		return err
	}
	if err := m.sender.DialAndSendWithContext(ctx, built); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// Build converts msg to a MIME message with an HTML body. Attachments must
// exist on disk.
func (m *Mailer) Build(msg *cfpwatch.Message) (*mail.Msg, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "invalid sender %q: %v", m.from, err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "invalid recipient %q: %v", msg.To, err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "attachment not found: %s", path)
			}
			return nil, err
		}
		out.AttachFile(path)
	}
	return out, nil
}
