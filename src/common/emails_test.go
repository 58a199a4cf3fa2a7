package common

import (
	"context"
	"errors"
	"testing"

	"cycleparadise/src/lib/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	sent []*mailer.Message
	err  error
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Send(ctx context.Context, m *mailer.Message) error {
	r.sent = append(r.sent, m)
	return r.err
}

func (r *recordingTransport) Verify(ctx context.Context) error { return nil }

func TestDecodeEmailRoundTrip(t *testing.T) {
	in := &mailer.Message{
		From:        "noreply@cycleparadise.com",
		FromName:    "Cycle Paradise",
		To:          []string{"jane@example.com"},
		Subject:     "Booking Confirmation - CP-20250601-0001",
		HTML:        "<p>Thanks</p>",
		Attachments: []mailer.Attachment{{Name: "qr.jpeg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8}}},
	}
	body, err := in.Encode()
	require.NoError(t, err)

	out, err := DecodeEmail(body)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeEmailInvalid(t *testing.T) {
	_, err := DecodeEmail("not json")
	assert.ErrorIs(t, err, ErrInvalidEmailPayload)

	_, err = DecodeEmail(`{"subject":"no recipients"}`)
	assert.ErrorIs(t, err, ErrInvalidEmailPayload)
}

func TestEmailConsumer(t *testing.T) {
	tr := &recordingTransport{}
	handle := EmailConsumer(tr)

	assert.NoError(t, handle(context.Background(), `{"to":["a@example.com"],"subject":"Hi","html":"<p>Hi</p>"}`))
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "Hi", tr.sent[0].Subject)

	assert.NoError(t, handle(context.Background(), "{"))
	assert.Len(t, tr.sent, 1)

	tr.err = errors.New("smtp down")
	assert.Error(t, handle(context.Background(), `{"to":["a@example.com"],"subject":"Hi"}`))
}
