package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-booking-reminder/internal/config"
)

//go:generate mockgen -source=sender.go -destination=mock.go -package=mailer

var ErrInvalidMessage = errors.New("invalid email message")

// Tag is a name/value pair attached to an outgoing message for correlation.
type Tag struct {
	Name  string
	Value string
}

type Message struct {
	To      string
	Subject string
	HTML    string
	Tags    []Tag
}

func (m *Message) validate() error {
	if m == nil || m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	return nil
}

// Sender hands a message to the email transport and returns the transport's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

func NewSender(ctx context.Context, cfg *config.MailConfig) (Sender, error) {
	switch cfg.Provider {
	case config.MailProviderSES:
		return NewSESSender(ctx, cfg.SESRegion, cfg.From, cfg.SESConfigurationSet)
	case config.MailProviderSMTP, "":
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Provider)
	}
}
