// Package mailer renders the customer and admin emails and hands them to
// a Transport.
package mailer

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/config"
	"cycleparadise/src/lib"
	"cycleparadise/src/models"
	"cycleparadise/src/types"
	"fmt"
	"log"
	"strings"
	"time"

	awslib "cycleparadise/src/lib/aws"
)

type Template struct {
	Subject string
	HTML    string
	Text    string
}

type BookingDetails struct {
	BookingNumber string
	CustomerName  string
	PackageTitle  string
	StartDate     time.Time
	Participants  int
	TotalAmount   float64
	PaymentStatus types.PaymentStatus
}

func DetailsFromBooking(b *models.Booking) BookingDetails {
	d := BookingDetails{
		BookingNumber: b.BookingNumber,
		CustomerName:  b.CustomerName,
		StartDate:     b.StartDate,
		Participants:  b.Participants,
		TotalAmount:   b.TotalAmount,
		PaymentStatus: b.PaymentStatus,
	}
	if b.Package != nil {
		d.PackageTitle = b.Package.Title
	}
	return d
}

type Notifier struct {
	transport    Transport
	from         string
	fromName     string
	contactEmail string
	adminEmail   string
	qrcode       func(string) ([]byte, error)
}

func NewNotifier(t Transport, cfg *config.Config) *Notifier {
	return &Notifier{
		transport:    t,
		from:         cfg.MailFrom,
		fromName:     cfg.MailFromName,
		contactEmail: cfg.ContactEmail,
		adminEmail:   cfg.AdminEmail,
		qrcode:       lib.QRCodeJPEG,
	}
}

// NewTransport selects the transport for cfg.MailDriver. SMTP without a
// host falls back to logging.
func NewTransport(ctx context.Context, cfg *config.Config) (Transport, error) {
	switch cfg.MailDriver {
	case "ses", "sqs":
		awsCfg, err := awslib.LoadConfig(ctx, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, err
		}
		if cfg.MailDriver == "ses" {
			return NewSESTransport(awslib.NewSESSender(awsCfg)), nil
		}
		return NewQueueTransport(awslib.NewQueue(awslib.NewSQSClient(awsCfg), cfg.EmailQueue)), nil
	case "log":
		return LogTransport{}, nil
	default:
		client, err := lib.NewSMTPClient(cfg)
		if err == lib.ErrSMTPNotConfigured {
			log.Println("[MAILER] SMTP_HOST is not set, emails will only be logged")
			return LogTransport{}, nil
		}
		if err != nil {
			return nil, err
		}
		return NewSMTPTransport(client), nil
	}
}

func (n *Notifier) Transport() string {
	return n.transport.Name()
}

func (n *Notifier) SendEmail(ctx context.Context, to []string, t Template) error {
	return n.send(ctx, to, t, nil)
}

func (n *Notifier) send(ctx context.Context, to []string, t Template, attachments []Attachment) error {
	m := &Message{
		From:        n.from,
		FromName:    n.fromName,
		To:          to,
		Subject:     t.Subject,
		HTML:        t.HTML,
		Text:        t.Text,
		Attachments: attachments,
	}
	if err := n.transport.Send(ctx, m); err != nil {
		log.Printf("[MAILER] Failed to send %q: %s\n", t.Subject, err.Error())
		return err
	}
	log.Printf("[MAILER] Email sent successfully: %s\n", t.Subject)
	return nil
}

func (n *Notifier) booking(ctx context.Context, email, name, subject string, data templateData, attachments []Attachment) error {
	data.ContactEmail = n.contactEmail
	body, err := render(name, data)
	if err != nil {
		return err
	}
	return n.send(ctx, []string{email}, Template{Subject: subject, HTML: body}, attachments)
}

// SendBookingConfirmation attaches a QR code of the booking number. A QR
// failure is logged and the email goes out without it.
func (n *Notifier) SendBookingConfirmation(ctx context.Context, email string, d BookingDetails) error {
	var attachments []Attachment
	if img, err := n.qrcode(d.BookingNumber); err != nil {
		log.Printf("[MAILER] Could not render QR code for %s: %s\n", d.BookingNumber, err.Error())
	} else {
		attachments = append(attachments, Attachment{
			Name:        d.BookingNumber + ".jpeg",
			ContentType: "image/jpeg",
			Data:        img,
		})
	}
	subject := fmt.Sprintf("Booking Confirmation - %s", d.BookingNumber)
	return n.booking(ctx, email, "confirmation", subject, templateData{BookingDetails: d}, attachments)
}

// SendCancellation includes notes when they are not empty.
func (n *Notifier) SendCancellation(ctx context.Context, email string, d BookingDetails, notes string) error {
	subject := fmt.Sprintf("Booking Cancellation - %s", d.BookingNumber)
	return n.booking(ctx, email, "cancellation", subject, templateData{BookingDetails: d, Notes: notes}, nil)
}

func (n *Notifier) SendPaymentConfirmed(ctx context.Context, email string, d BookingDetails) error {
	subject := fmt.Sprintf("Payment Confirmed - %s", d.BookingNumber)
	return n.booking(ctx, email, "payment", subject, templateData{BookingDetails: d}, nil)
}

func (n *Notifier) SendCustom(ctx context.Context, email string, d BookingDetails, subject, message string) error {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return apperror.NewValidationError("Subject and message are required for custom emails", "message", "")
	}
	return n.booking(ctx, email, "custom", subject, templateData{BookingDetails: d, Message: message}, nil)
}

// SendAdminNotification mails the admin address. content is plain text.
func (n *Notifier) SendAdminNotification(ctx context.Context, subject, content string) error {
	body, err := render("admin", templateData{Message: content})
	if err != nil {
		return err
	}
	return n.send(ctx, []string{n.adminEmail}, Template{
		Subject: "[Cycle Paradise Admin] " + subject,
		HTML:    body,
	}, nil)
}

func (n *Notifier) Verify(ctx context.Context) error {
	if err := n.transport.Verify(ctx); err != nil {
		log.Printf("[MAILER] Email service verification failed: %s\n", err.Error())
		return err
	}
	log.Printf("[MAILER] Email service connection verified (%s)\n", n.transport.Name())
	return nil
}
