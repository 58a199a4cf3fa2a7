package mailer

import (
	"context"
	"log"

	awslib "cycleparadise/src/lib/aws"

	"github.com/wneessen/go-mail"
)

// Transport delivers a built Message.
type Transport interface {
	Name() string
	Send(ctx context.Context, m *Message) error
	Verify(ctx context.Context) error
}

type SMTPTransport struct {
	client *mail.Client
}

func NewSMTPTransport(client *mail.Client) *SMTPTransport {
	return &SMTPTransport{client: client}
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Send(ctx context.Context, m *Message) error {
	msg, err := m.Build()
	if err != nil {
		return err
	}
	return t.client.DialAndSendWithContext(ctx, msg)
}

func (t *SMTPTransport) Verify(ctx context.Context) error {
	if err := t.client.DialWithContext(ctx); err != nil {
		return err
	}
	return t.client.Close()
}

type SESTransport struct {
	sender *awslib.SESSender
}

func NewSESTransport(sender *awslib.SESSender) *SESTransport {
	return &SESTransport{sender: sender}
}

func (t *SESTransport) Name() string { return "ses" }

func (t *SESTransport) Send(ctx context.Context, m *Message) error {
	raw, err := m.Raw()
	if err != nil {
		return err
	}
	_, err = t.sender.SendRaw(ctx, m.From, m.To, raw)
	return err
}

func (t *SESTransport) Verify(ctx context.Context) error {
	return t.sender.Ping(ctx)
}

// QueueTransport hands messages to the email queue. A consumer sends
// them later through a direct transport.
type QueueTransport struct {
	queue *awslib.Queue
}

func NewQueueTransport(queue *awslib.Queue) *QueueTransport {
	return &QueueTransport{queue: queue}
}

func (t *QueueTransport) Name() string { return "sqs" }

func (t *QueueTransport) Send(ctx context.Context, m *Message) error {
	body, err := m.Encode()
	if err != nil {
		return err
	}
	id, err := t.queue.Send(ctx, body)
	if err != nil {
		return err
	}
	log.Printf("[MAILER] queued %q on %s: %s\n", m.Subject, t.queue.Name, id)
	return nil
}

func (t *QueueTransport) Verify(ctx context.Context) error {
	_, err := t.queue.URL(ctx)
	return err
}

// LogTransport only logs. Used when no mail backend is configured.
type LogTransport struct{}

func (LogTransport) Name() string { return "log" }

func (LogTransport) Send(ctx context.Context, m *Message) error {
	log.Printf("[MAILER] to=%v subject=%q attachments=%d\n", m.To, m.Subject, len(m.Attachments))
	return nil
}

func (LogTransport) Verify(ctx context.Context) error { return nil }
