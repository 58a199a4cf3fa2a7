// Package boot wires the startup work that runs before the router accepts
// traffic: migrations and background jobs.
package boot

import (
	"context"
	"cycleparadise/src/common"
	"cycleparadise/src/config"
	"cycleparadise/src/lib"
	"cycleparadise/src/lib/mailer"
	"cycleparadise/src/models"
	"log"
	"time"

	awslib "cycleparadise/src/lib/aws"

	"gorm.io/gorm"
)

const SessionCleanupInterval = time.Hour

func InitDb(conn *gorm.DB) error {
	if err := conn.AutoMigrate(models.All()...); err != nil {
		log.Printf("error migration: %s\n", err.Error())
		return err
	}
	return nil
}

type SessionCleaner interface {
	CleanupExpired(ctx context.Context, now time.Time) (int64, error)
}

// InitScheduler registers the maintenance jobs. The scheduler is not
// started here.
func InitScheduler(sched *lib.Scheduler, sessions SessionCleaner) error {
	_, err := sched.Every("cleanup-expired-sessions", SessionCleanupInterval, func(ctx context.Context) {
		removed, err := sessions.CleanupExpired(ctx, time.Now())
		if err != nil {
			log.Printf("Error cleaning up sessions: %s\n", err.Error())
			return
		}
		if removed > 0 {
			log.Printf("[scheduler] removed %d expired sessions\n", removed)
		}
	})
	if err != nil {
		return err
	}
	log.Println("Jobs in queue:", sched.Jobs())
	return nil
}

// InitEmailConsumer relays the queued emails through SMTP when the mail
// driver is sqs. It runs as a one-off job so that shutting down the
// scheduler also stops the listener.
func InitEmailConsumer(ctx context.Context, sched *lib.Scheduler, cfg *config.Config) error {
	if cfg.MailDriver != "sqs" {
		return nil
	}
	client, err := lib.NewSMTPClient(cfg)
	if err != nil {
		log.Printf("[emails] consumer disabled: %s\n", err.Error())
		return nil
	}
	awsCfg, err := awslib.LoadConfig(ctx, cfg.AWSIAMRoleARN)
	if err != nil {
		return err
	}
	queue := awslib.NewQueue(awslib.NewSQSClient(awsCfg), cfg.EmailQueue)
	transport := mailer.NewSMTPTransport(client)
	_, err = sched.Once("email-consumer", time.Now().Add(time.Second), func(ctx context.Context) {
		common.ListenForEmails(ctx, queue, transport)
	})
	return err
}

func StopScheduler(sched *lib.Scheduler) {
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error stopping scheduler: %s\n", err.Error())
	}
}
