package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/config"
	"github.com/spec-kit/bursa-register/internal/events"
)

// Mailer sends email. *ses.Client satisfies it.
type Mailer interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewSESMailer builds an SES client for region using the default credential chain.
func NewSESMailer(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. A nil mailer logs the email
// instead of sending it.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSubmissionCreated, n.handleSubmissionCreated)
}

func (n *NotificationService) handleSubmissionCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubmissionCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("SubmissionCreated",
		zap.String("submission_id", event.SubmissionID),
		zap.String("business", payload.BusinessName))

	to := strings.TrimSpace(event.Actor.Email)
	if to == "" || strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return nil
	}
	subject, body := submissionReceivedEmail(event.Actor.Name, payload)
	return n.sendEmail(ctx, to, subject, body)
}

func (n *NotificationService) sendEmail(ctx context.Context, to, subject, body string) error {
	if n.mailer == nil {
		n.logger.Debug("email not sent: no mailer configured",
			zap.String("from", n.cfg.EmailFrom),
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	_, err := n.mailer.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(n.cfg.EmailFrom),
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func submissionReceivedEmail(recipient string, payload events.SubmissionCreatedPayload) (string, string) {
	greeting := "Halo"
	if name := strings.TrimSpace(payload.OwnerName); name != "" {
		greeting = "Halo " + name
	} else if recipient != "" {
		greeting = "Halo " + recipient
	}
	subject := fmt.Sprintf("Pendaftaran %s sudah kami terima", payload.BusinessName)
	body := fmt.Sprintf(`%s,

Terima kasih telah mendaftarkan %s di Bursa.

Status: %s
%s

Kami akan memberitahu Anda melalui email setelah bisnis Anda disetujui.
`, greeting, payload.BusinessName, payload.Status.Title(), payload.Status.Description())
	return subject, body
}
