package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	mailProviderEnv        = "MAIL_PROVIDER"
	mailFromEnv            = "MAIL_FROM"
	mailSendTimeoutEnv     = "MAIL_SEND_TIMEOUT"
	smtpHostEnv            = "SMTP_HOST"
	smtpPortEnv            = "SMTP_PORT"
	smtpUsernameEnv        = "SMTP_USERNAME"
	smtpPasswordEnv        = "SMTP_PASSWORD"
	sesRegionEnv           = "SES_REGION"
	sesConfigurationSetEnv = "SES_CONFIGURATION_SET"

	defaultMailFrom        = "reminders@localhost"
	defaultMailSendTimeout = 10 * time.Second
	defaultSMTPHost        = "localhost"
	defaultSMTPPort        = 1025
	defaultSESRegion       = "eu-west-1"
)

type MailProvider string

const (
	MailProviderSMTP MailProvider = "smtp"
	MailProviderSES  MailProvider = "ses"
)

type MailConfig struct {
	Provider    MailProvider
	From        string
	SendTimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SESRegion           string
	SESConfigurationSet string
}

func LoadMailConfig() (*MailConfig, error) {
	provider := MailProviderSMTP
	if v := os.Getenv(mailProviderEnv); v != "" {
		switch MailProvider(strings.ToLower(v)) {
		case MailProviderSMTP:
			provider = MailProviderSMTP
		case MailProviderSES:
			provider = MailProviderSES
		default:
			return nil, ErrInvalidMailProvider
		}
	}

	from := os.Getenv(mailFromEnv)
	if from == "" {
		from = defaultMailFrom
	}

	sendTimeout := defaultMailSendTimeout
	if v := os.Getenv(mailSendTimeoutEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidMailSendTimeout
		}
		sendTimeout = parsed
	}

	host := os.Getenv(smtpHostEnv)
	if host == "" {
		host = defaultSMTPHost
	}

	port := defaultSMTPPort
	if v := os.Getenv(smtpPortEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidSMTPPort
		}
		port = parsed
	}

	region := os.Getenv(sesRegionEnv)
	if region == "" {
		region = defaultSESRegion
	}

	return &MailConfig{
		Provider:    provider,
		From:        from,
		SendTimeout: sendTimeout,

		SMTPHost:     host,
		SMTPPort:     port,
		SMTPUsername: os.Getenv(smtpUsernameEnv),
		SMTPPassword: os.Getenv(smtpPasswordEnv),

		SESRegion:           region,
		SESConfigurationSet: os.Getenv(sesConfigurationSetEnv),
	}, nil
}
