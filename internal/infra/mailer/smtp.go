package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

const tagHeaderPrefix = "X-Reminder-"

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer smtpDialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	slog.Info("SMTP sender initialized",
		slog.String("host", host),
		slog.Int("port", port),
		slog.String("from", from),
	)

	return newSMTPSender(gomail.NewDialer(host, port, username, password), from)
}

func newSMTPSender(dialer smtpDialer, from string) *SMTPSender {
	return &SMTPSender{
		dialer: dialer,
		from:   from,
	}
}

// Send dials the relay for each message. The returned id is the Message-ID header the
// sender assigned.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), senderDomain(s.from))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", "<"+messageID+">")
	for _, tag := range msg.Tags {
		m.SetHeader(tagHeaderPrefix+tagHeaderName(tag.Name), tag.Value)
	}
	m.SetBody("text/html", msg.HTML)

	// gomail has no context support; the dial is abandoned, not interrupted, on cancel.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send failed: %w", err)
		}
		return messageID, nil
	case <-ctx.Done():
		return "", fmt.Errorf("smtp send aborted: %w", ctx.Err())
	}
}

func senderDomain(from string) string {
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		return strings.TrimSuffix(from[at+1:], ">")
	}
	return "localhost"
}

// tagHeaderName turns job_id into Job-Id.
func tagHeaderName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, "-")
}
