package cfpwatch

import "context"

// Message is an email with an HTML body.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []string // file paths
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.To == "" {
		return Errorf(EINVALID, "message recipient required")
	}
	if m.Subject == "" {
		return Errorf(EINVALID, "message subject required")
	}
	return nil
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
