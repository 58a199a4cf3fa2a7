package lib

import (
	"cycleparadise/src/config"
	"errors"
	"log"

	"github.com/wneessen/go-mail"
)

var ErrSMTPNotConfigured = errors.New("SMTP_HOST is not set")

// NewSMTPClient builds a go-mail client from the SMTP settings. Port 465
// (or SMTP_SECURE) uses implicit TLS, anything else tries STARTTLS.
func NewSMTPClient(cfg *config.Config) (*mail.Client, error) {
	if cfg.SMTPHost == "" {
		return nil, ErrSMTPNotConfigured
	}
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPSecure {
		opts = append(opts, mail.WithSSLPort(false))
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	c, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}
