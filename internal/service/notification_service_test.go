package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/config"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/events"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{}, nil
}

func createdEvent(email string) events.Event {
	return events.Event{
		ID:           "e1",
		Type:         events.EventSubmissionCreated,
		SubmissionID: "s1",
		Actor:        events.Actor{Subject: "g1", Email: email, Name: "Ani"},
		Payload: events.SubmissionCreatedPayload{
			BusinessName: "Warung Bu Ani",
			OwnerName:    "Bu Ani",
			Status:       domain.SubmissionPending,
		},
	}
}

func TestNotificationService_SendsSubmissionReceivedEmail(t *testing.T) {
	mailer := &MockSESService{}
	n := NewNotificationService(nil, mailer, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@bursa.id"})

	require.NoError(t, n.handleSubmissionCreated(context.Background(), createdEvent("ani@example.com")))
	require.Len(t, mailer.calls, 1)

	input := mailer.calls[0]
	assert.Equal(t, []string{"ani@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "noreply@bursa.id", *input.Source)
	assert.Contains(t, *input.Message.Subject.Data, "Warung Bu Ani")
	assert.Contains(t, *input.Message.Body.Text.Data, "Halo Bu Ani")
	assert.Contains(t, *input.Message.Body.Text.Data, "Sedang Ditinjau")
}

func TestNotificationService_MailerError(t *testing.T) {
	mailer := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	n := NewNotificationService(nil, mailer, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@bursa.id"})
	assert.Error(t, n.handleSubmissionCreated(context.Background(), createdEvent("ani@example.com")))
}

func TestNotificationService_SkipsWithoutRecipientOrMailer(t *testing.T) {
	mailer := &MockSESService{}
	n := NewNotificationService(nil, mailer, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@bursa.id"})
	require.NoError(t, n.handleSubmissionCreated(context.Background(), createdEvent("")))
	assert.Empty(t, mailer.calls)

	stub := NewNotificationService(nil, nil, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@bursa.id"})
	assert.NoError(t, stub.handleSubmissionCreated(context.Background(), createdEvent("ani@example.com")))
}

func TestNotificationService_RegisterHandlers(t *testing.T) {
	mailer := &MockSESService{}
	dispatcher := events.NewInMemoryDispatcher(nil)
	n := NewNotificationService(dispatcher, mailer, zap.NewNop(), config.NotificationConfig{EmailFrom: "noreply@bursa.id"})
	n.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), createdEvent("ani@example.com")))
	assert.Len(t, mailer.calls, 1)
}
