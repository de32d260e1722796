package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeSender) Send(to, subject, htmlBody, textBody string) error {
	f.to, f.subject, f.html, f.text = to, subject, htmlBody, textBody
	return f.err
}

func TestSendOTP_RendersCodeAndTTL(t *testing.T) {
	f := &fakeSender{}
	require.NoError(t, SendOTP(f, "ana@example.com", "Ana", "493021", 5*time.Minute))

	assert.Equal(t, "ana@example.com", f.to)
	assert.Equal(t, otpSubject, f.subject)
	assert.Contains(t, f.html, "493021")
	assert.Contains(t, f.html, "5 minutos")
	assert.Contains(t, f.html, "Hola Ana")
	assert.Contains(t, f.text, "493021")
	assert.Contains(t, f.text, "5 minutos")
}

func TestSendOTP_SenderError(t *testing.T) {
	f := &fakeSender{err: ErrSendFailed}
	err := SendOTP(f, "ana@example.com", "", "111111", time.Minute)
	require.Error(t, err)
}
