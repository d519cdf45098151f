package outreach

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appconfig "github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/resilience"
)

// SESMailer sends email through AWS SES v2. Sends pass through a rate
// limiter so bursts of brand actions cannot exceed the provider quota.
type SESMailer struct {
	client    *sesv2.Client
	limiter   *rate.Limiter
	fromName  string
	fromAddr  string
	replyTo   string
	dryRun    bool
}

// NewSESMailer builds the SES client from static credentials. With
// DryRun set, sends are logged and acknowledged without calling SES.
func NewSESMailer(ctx context.Context, cfg appconfig.EmailConfig) (*SESMailer, error) {
	mailer := &SESMailer{
		limiter:  rate.NewLimiter(rate.Limit(cfg.SendsPerSec), cfg.SendBurst),
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
		replyTo:  cfg.ReplyTo,
		dryRun:   cfg.DryRun,
	}
	if mailer.dryRun {
		return mailer, nil
	}

	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, eris.New("outreach: ses credentials not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, eris.Wrap(err, "outreach: load aws config")
	}
	mailer.client = sesv2.NewFromConfig(awsCfg)

	return mailer, nil
}

// Send delivers one email through SES and returns the provider message id.
func (m *SESMailer) Send(ctx context.Context, email Email) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "outreach: rate limit wait")
	}

	if m.dryRun {
		id := "dry-run-" + uuid.NewString()
		zap.L().Info("ses: dry-run send",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.String("message_id", id),
		)
		return id, nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.fromAddr)),
		Destination:      &types.Destination{ToAddresses: []string{email.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if m.replyTo != "" {
		input.ReplyToAddresses = []string{m.replyTo}
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("ses", "send")
	out, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*sesv2.SendEmailOutput, error) {
		return m.client.SendEmail(ctx, input)
	})
	if err != nil {
		return "", eris.Wrapf(err, "outreach: ses send to %s", email.To)
	}

	messageID := ""
	if out.MessageId != nil {
		messageID = *out.MessageId
	}
	zap.L().Info("ses: sent",
		zap.String("to", email.To),
		zap.String("message_id", messageID),
	)

	return messageID, nil
}
