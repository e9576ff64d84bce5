package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Mailer sends plain-text e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESMailer sends through Amazon SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSES loads the default AWS credential chain for region.
func NewSES(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Send delivers one message.
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when no
// sender address is configured.
type LogMailer struct {
	Logger *zap.Logger
}

// Send logs the message.
func (m LogMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Logger == nil {
		return nil
	}
	m.Logger.Debug("email suppressed",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_len", len(body)))
	return nil
}

// New picks SES when a sender address is configured and the log mailer otherwise.
func New(ctx context.Context, region, from string, logger *zap.Logger) (Mailer, error) {
	if strings.TrimSpace(from) == "" {
		return LogMailer{Logger: logger}, nil
	}
	return NewSES(ctx, region, from)
}
