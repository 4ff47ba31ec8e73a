package service

import (
	"errors"
	"strings"
	"testing"

	"finance-guru/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.sent = append(r.sent, m...)
	return r.err
}

func enabledService(rec *recordingSender) *EmailService {
	s := NewEmailService(&config.EmailConfig{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     465,
		Username: "noreply@example.com",
		From:     "Finance Guru",
	})
	s.sender = rec
	return s
}

func TestResetEmailBody(t *testing.T) {
	body := resetEmailBody("<b>alice</b>", "https://example.com/reset-password?token=abc&x=1")
	assert.Contains(t, body, "&lt;b&gt;alice&lt;/b&gt;")
	assert.NotContains(t, body, "<b>alice</b>")
	assert.Contains(t, body, "token=abc&amp;x=1")
	assert.Contains(t, body, "30 minutes")
}

func TestSendPasswordResetEmail(t *testing.T) {
	rec := &recordingSender{}
	s := enabledService(rec)

	err := s.SendPasswordResetEmail("saver@example.com", "saver", "https://example.com/reset-password?token=abc")
	require.NoError(t, err)
	require.Len(t, rec.sent, 1)

	m := rec.sent[0]
	assert.Equal(t, []string{"saver@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Finance Guru - Password Reset"}, m.GetHeader("Subject"))
	require.Len(t, m.GetHeader("From"), 1)
	assert.True(t, strings.Contains(m.GetHeader("From")[0], "noreply@example.com"))
}

func TestSendPasswordResetEmail_SendFailure(t *testing.T) {
	rec := &recordingSender{err: errors.New("535 authentication failed")}
	s := enabledService(rec)

	err := s.SendPasswordResetEmail("saver@example.com", "saver", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestSendPasswordResetEmail_Disabled(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{})
	assert.False(t, s.Enabled())

	err := s.SendPasswordResetEmail("a@example.com", "alice", "https://example.com")
	assert.ErrorIs(t, err, ErrEmailDisabled)

	assert.False(t, NewEmailService(nil).Enabled())
}
