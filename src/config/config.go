package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DATE_FORMAT     = "2006-01-02"
	SESSION_COOKIE  = "admin_session"
	SESSION_TTL     = 24 * time.Hour
	REMEMBER_ME_TTL = 14 * 24 * time.Hour
)

type Config struct {
	APIEnv          string
	Port            string
	AppHost         string
	SiteURL         string
	MaintenanceMode bool

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	DatabaseTimezone string

	RedisURL      string
	SessionSecret string

	// MailDriver is one of smtp, ses, sqs or log.
	MailDriver   string
	MailFrom     string
	MailFromName string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSecure   bool
	ContactEmail string
	AdminEmail   string
	EmailQueue   string

	AWSIAMRoleARN  string
	S3AssetsBucket string
	AssetsBaseURL  string
	CloudinaryURL  string
	UploadDir      string
	UploadURL      string
}

// Load reads the environment. When AWS_SECRETS_ID is set, the JSON
// key/value pairs of that secret take precedence over the environment.
func Load(ctx context.Context) (*Config, error) {
	lookup := os.Getenv
	if id := os.Getenv("AWS_SECRETS_ID"); id != "" {
		secrets, err := FetchSecrets(ctx, nil, id)
		if err != nil {
			return nil, fmt.Errorf("loading secrets %s: %w", id, err)
		}
		lookup = Overlay(secrets, os.Getenv)
	}
	return FromLookup(lookup), nil
}

// Overlay returns a lookup that prefers values from secrets.
func Overlay(secrets map[string]string, fallback func(string) string) func(string) string {
	return func(key string) string {
		if v, ok := secrets[key]; ok {
			return v
		}
		return fallback(key)
	}
}

func FromLookup(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	smtpPort, err := strconv.Atoi(get("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}
	maintenance, _ := strconv.ParseBool(get("MAINTENANCE_MODE", "false"))
	secure, _ := strconv.ParseBool(get("SMTP_SECURE", "false"))
	contact := get("CONTACT_EMAIL", "info@cycleparadise.com")

	return &Config{
		APIEnv:          get("API_ENV", "local"),
		Port:            get("PORT", "8080"),
		AppHost:         getenv("APP_HOST"),
		SiteURL:         get("SITE_URL", "https://cycleparadise.com"),
		MaintenanceMode: maintenance,

		DatabaseHost:     get("DATABASE_HOST", "localhost"),
		DatabasePort:     get("DATABASE_PORT", "5432"),
		DatabaseUser:     get("DATABASE_USER", "postgres"),
		DatabasePassword: getenv("DATABASE_PASSWORD"),
		DatabaseName:     get("DATABASE_NAME", "cycleparadise"),
		DatabaseSSLMode:  get("DATABASE_SSLMODE", "disable"),
		DatabaseTimezone: get("DATABASE_TIMEZONE", "UTC"),

		RedisURL:      getenv("REDIS_URL"),
		SessionSecret: get("SESSION_SECRET", "change-me-in-production"),

		MailDriver:   strings.ToLower(get("MAIL_DRIVER", "smtp")),
		MailFrom:     get("SMTP_FROM", "noreply@cycleparadise.com"),
		MailFromName: get("SMTP_FROM_NAME", "Cycle Paradise"),
		SMTPHost:     getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     getenv("SMTP_USER"),
		SMTPPassword: getenv("SMTP_PASS"),
		SMTPSecure:   secure || smtpPort == 465,
		ContactEmail: contact,
		AdminEmail:   get("ADMIN_EMAIL", contact),
		EmailQueue:   get("EMAIL_QUEUE", "cycleparadise-emails"),

		AWSIAMRoleARN:  getenv("AWS_IAM_ROLE_ARN"),
		S3AssetsBucket: getenv("S3_ASSETS_BUCKET"),
		AssetsBaseURL:  getenv("ASSETS_BASE_URL"),
		CloudinaryURL:  getenv("CLOUDINARY_URL"),
		UploadDir:      get("UPLOAD_DIR", "public/uploads"),
		UploadURL:      get("UPLOAD_URL", "/uploads"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DatabaseHost, c.DatabaseUser, c.DatabasePassword, c.DatabaseName, c.DatabasePort, c.DatabaseSSLMode, c.DatabaseTimezone)
}

func (c *Config) IsProd() bool {
	return c.APIEnv == "production" || c.APIEnv == "prod"
}
