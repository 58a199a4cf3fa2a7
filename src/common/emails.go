// Package common holds background consumers shared by the API process.
package common

import (
	"context"
	"cycleparadise/src/lib/mailer"
	"encoding/base64"
	"errors"
	"log"

	awslib "cycleparadise/src/lib/aws"

	"github.com/tidwall/gjson"
)

var ErrInvalidEmailPayload = errors.New("invalid email payload")

// DecodeEmail parses a queued email as produced by mailer.Message.Encode.
func DecodeEmail(spayload string) (*mailer.Message, error) {
	if !gjson.Valid(spayload) {
		return nil, ErrInvalidEmailPayload
	}
	body := gjson.Parse(spayload)
	m := &mailer.Message{
		From:     body.Get("from").String(),
		FromName: body.Get("from-name").String(),
		ReplyTo:  body.Get("reply-to").String(),
		Subject:  body.Get("subject").String(),
		HTML:     body.Get("html").String(),
		Text:     body.Get("text").String(),
	}
	for _, to := range body.Get("to").Array() {
		m.To = append(m.To, to.String())
	}
	if len(m.To) == 0 || m.Subject == "" {
		return nil, ErrInvalidEmailPayload
	}
	for _, a := range body.Get("attachments").Array() {
		data, err := base64.StdEncoding.DecodeString(a.Get("data").String())
		if err != nil {
			return nil, err
		}
		m.Attachments = append(m.Attachments, mailer.Attachment{
			Name:        a.Get("name").String(),
			ContentType: a.Get("content-type").String(),
			Data:        data,
		})
	}
	return m, nil
}

// EmailConsumer sends queued emails through a direct transport.
func EmailConsumer(transport mailer.Transport) awslib.MessageHandler {
	return func(ctx context.Context, spayload string) error {
		m, err := DecodeEmail(spayload)
		if errors.Is(err, ErrInvalidEmailPayload) {
			// redelivery will not fix a malformed body
			log.Printf("[emails]: Received invalid json body. Dropping")
			return nil
		}
		if err != nil {
			return err
		}
		if err := transport.Send(ctx, m); err != nil {
			log.Printf("[emails] Error sending %q: %s\n", m.Subject, err.Error())
			return err
		}
		return nil
	}
}

// ListenForEmails blocks until ctx is done.
func ListenForEmails(ctx context.Context, queue *awslib.Queue, transport mailer.Transport) {
	log.Printf("[emails] relaying %s through %s\n", queue.Name, transport.Name())
	if err := queue.Listen(ctx, EmailConsumer(transport)); err != nil {
		log.Printf("[emails] consumer stopped: %s\n", err.Error())
	}
}
