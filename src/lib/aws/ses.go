package aws

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
	GetSendQuota(ctx context.Context, params *ses.GetSendQuotaInput, optFns ...func(*ses.Options)) (*ses.GetSendQuotaOutput, error)
}

type SESSender struct {
	api SESAPI
}

func NewSESSender(cfg aws.Config) *SESSender {
	return &SESSender{api: ses.NewFromConfig(cfg)}
}

func NewSESSenderWithClient(api SESAPI) *SESSender {
	return &SESSender{api: api}
}

// SendRaw sends a fully encoded MIME message and returns the SES message ID.
func (s *SESSender) SendRaw(ctx context.Context, from string, to []string, raw []byte) (string, error) {
	out, err := s.api.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: to,
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return "", err
	}
	id := aws.ToString(out.MessageId)
	log.Printf("Sent email with id: %s\n", id)
	return id, nil
}

// Ping checks that the credentials can reach SES.
func (s *SESSender) Ping(ctx context.Context) error {
	_, err := s.api.GetSendQuota(ctx, &ses.GetSendQuotaInput{})
	return err
}
