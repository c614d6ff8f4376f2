package smtp_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	report := filepath.Join(t.TempDir(), "RESULTS.json")
	require.NoError(t, os.WriteFile(report, []byte("[]"), 0o644))

	sender := &fakeSender{}
	m := smtp.NewMailerWithSender("watcher@example.com", sender)

	err := m.Send(context.Background(), &cfpwatch.Message{
		To:          "me@example.com",
		Subject:     "CFP Results JSON",
		HTMLBody:    "<p>hello</p>",
		Attachments: []string{report},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	var buf bytes.Buffer
	_, err = sender.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: CFP Results JSON")
	assert.Contains(t, raw, "me@example.com")
	assert.Contains(t, raw, "watcher@example.com")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "hello")
	assert.Contains(t, raw, "RESULTS.json")
}

func TestMailer_Send_SenderError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("connection refused")}
	m := smtp.NewMailerWithSender("watcher@example.com", sender)

	err := m.Send(context.Background(), &cfpwatch.Message{To: "me@example.com", Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMailer_Build_Errors(t *testing.T) {
	t.Parallel()

	m := smtp.NewMailerWithSender("watcher@example.com", &fakeSender{})

	tests := []struct {
		name string
		msg  *cfpwatch.Message
		code string
	}{
		{"no recipient", &cfpwatch.Message{Subject: "s"}, cfpwatch.EINVALID},
		{"no subject", &cfpwatch.Message{To: "me@example.com"}, cfpwatch.EINVALID},
		{"bad recipient", &cfpwatch.Message{To: "not an address", Subject: "s"}, cfpwatch.EINVALID},
		{"missing attachment", &cfpwatch.Message{
			To:          "me@example.com",
			Subject:     "s",
			Attachments: []string{filepath.Join(t.TempDir(), "missing.json")},
		}, cfpwatch.ENOTFOUND},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.Build(tt.msg)
			require.Error(t, err)
			assert.Equal(t, tt.code, cfpwatch.ErrorCode(err))
		})
	}
}

func TestMailer_Build_InvalidSender(t *testing.T) {
	t.Parallel()

	m := smtp.NewMailerWithSender("", &fakeSender{})
	_, err := m.Build(&cfpwatch.Message{To: "me@example.com", Subject: "s"})
	assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(err))
}

func TestNewMailer(t *testing.T) {
	t.Parallel()

	_, err := smtp.NewMailer(smtp.Config{
		Host:     "smtp.example.com",
		Username: "user",
		Password: "secret",
		From:     "watcher@example.com",
	})
	require.NoError(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(smtp.Config{From: "a@b.c"}.Validate()))
	assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(smtp.Config{Host: "h"}.Validate()))
	assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(smtp.Config{Host: "h", From: "a@b.c", Port: 70000}.Validate()))
	assert.NoError(t, smtp.Config{Host: "h", From: "a@b.c"}.Validate())
}
