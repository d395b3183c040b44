package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	charsetUTF8       = "UTF-8"
	maxSESTagValueLen = 256
)

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	client           SESAPI
	from             string
	configurationSet string
}

func NewSESSender(ctx context.Context, region, from, configurationSet string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	slog.InfoContext(ctx, "SES sender initialized",
		slog.String("region", region),
		slog.String("from", from),
	)

	return newSESSender(ses.NewFromConfig(cfg), from, configurationSet), nil
}

func newSESSender(client SESAPI, from, configurationSet string) *SESSender {
	return &SESSender{
		client:           client,
		from:             from,
		configurationSet: configurationSet,
	}
}

func (s *SESSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charsetUTF8)},
			},
		},
	}

	if s.configurationSet != "" {
		input.ConfigurationSetName = aws.String(s.configurationSet)
	}

	for _, tag := range msg.Tags {
		input.Tags = append(input.Tags, types.MessageTag{
			Name:  aws.String(sanitizeTagValue(tag.Name)),
			Value: aws.String(sanitizeTagValue(tag.Value)),
		})
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ses send failed: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}

// sanitizeTagValue keeps the characters SES accepts in tag names and values.
func sanitizeTagValue(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxSESTagValueLen {
			break
		}
	}
	return b.String()
}
