package aws

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func NewSQSClient(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg)
}

// Queue is a named SQS queue whose URL is resolved on first use.
type Queue struct {
	Name string
	api  SQSAPI

	once sync.Once
	url  *string
	err  error
}

func NewQueue(api SQSAPI, name string) *Queue {
	return &Queue{Name: name, api: api}
}

func (q *Queue) resolve(ctx context.Context) (*string, error) {
	q.once.Do(func() {
		out, err := q.api.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(q.Name)})
		if err != nil {
			log.Printf("Failed to retrieve queue URL for %s: %s\n", q.Name, err.Error())
			q.err = err
			return
		}
		q.url = out.QueueUrl
	})
	return q.url, q.err
}

// URL resolves the queue URL, which also verifies access to the queue.
func (q *Queue) URL(ctx context.Context) (string, error) {
	url, err := q.resolve(ctx)
	return aws.ToString(url), err
}

func (q *Queue) Send(ctx context.Context, body string) (string, error) {
	url, err := q.resolve(ctx)
	if err != nil {
		return "", err
	}
	out, err := q.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    url,
		MessageBody: aws.String(body),
	})
	if err != nil {
		log.Printf("[SQS] Error sending message to %s: %s\n", q.Name, err.Error())
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

// MessageHandler processes one message body. Messages whose handler
// returns an error stay on the queue and are redelivered.
type MessageHandler func(ctx context.Context, body string) error

// Listen long-polls the queue until ctx is done.
func (q *Queue) Listen(ctx context.Context, handler MessageHandler) error {
	if _, err := q.resolve(ctx); err != nil {
		return err
	}
	log.Printf("%s: Listening for messages...", q.Name)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := q.Poll(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
			return err
		}
	}
}

// Poll runs one receive round.
func (q *Queue) Poll(ctx context.Context, handler MessageHandler) error {
	url, err := q.resolve(ctx)
	if err != nil {
		return err
	}
	output, err := q.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            url,
		WaitTimeSeconds:     20,
		MaxNumberOfMessages: 10,
	})
	if err != nil {
		return err
	}
	for _, m := range output.Messages {
		if err := handler(ctx, aws.ToString(m.Body)); err != nil {
			log.Printf("[SQS] Message %s failed: %s\n", aws.ToString(m.MessageId), err.Error())
			continue
		}
		q.deleteMessage(ctx, url, m)
	}
	return nil
}

func (q *Queue) deleteMessage(ctx context.Context, url *string, msg sqstypes.Message) {
	_, err := q.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      url,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("Error deleting message from queue: %s\n", err.Error())
		return
	}
	log.Printf("Deleted message from queue: %s\n", aws.ToString(msg.MessageId))
}
