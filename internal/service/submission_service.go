package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/events"
	"github.com/spec-kit/bursa-register/internal/repository"
	"github.com/spec-kit/bursa-register/internal/wizard"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

//go:embed schema/submission.json
var submissionSchema string

const (
	msgInvalidPayload = "Data pendaftaran tidak valid"
	msgCapReached     = "Batas pendaftaran bisnis untuk akun ini sudah tercapai"
)

// SubmissionService owns the submissions of the directory API: the status
// report and the acceptance of new businesses.
type SubmissionService struct {
	repo       repository.SubmissionRepository
	dispatcher events.Dispatcher
	variant    domain.Variant
	schema     *gojsonschema.Schema
	logger     *zap.Logger
}

// NewSubmissionService builds the service and compiles the payload schema.
func NewSubmissionService(repo repository.SubmissionRepository, dispatcher events.Dispatcher, variant domain.Variant, logger *zap.Logger) (*SubmissionService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(submissionSchema))
	if err != nil {
		return nil, fmt.Errorf("compile submission schema: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		repo:       repo,
		dispatcher: dispatcher,
		variant:    variant,
		schema:     schema,
		logger:     logger,
	}, nil
}

// Status reports the submissions and remaining slots of the caller.
func (s *SubmissionService) Status(ctx context.Context, session *domain.Session) (*domain.StatusReport, error) {
	records, err := s.repo.List(ctx, repository.SubmissionFilter{
		OwnerSubject: session.Subject,
		Limit:        s.variant.MaxSubmissions,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	report := &domain.StatusReport{
		User:        identityOf(session),
		Submissions: make([]domain.Submission, 0, len(records)),
	}
	for _, record := range records {
		report.Submissions = append(report.Submissions, record.Summary())
	}
	report.RemainingSlots = max(s.variant.MaxSubmissions-len(records), 0)
	report.CanSubmitMore = report.RemainingSlots > 0

	if s.variant.MaxSubmissions == 1 && len(report.Submissions) > 0 {
		report.HasSubmission = true
		latest := report.Submissions[0]
		report.Submission = &latest
	}
	return report, nil
}

// Get returns one submission of the caller.
func (s *SubmissionService) Get(ctx context.Context, session *domain.Session, id string) (*domain.SubmissionRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("submission", map[string]any{"id": id})
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("submission", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	if record.OwnerSubject != session.Subject {
		return nil, apperrors.NewNotFound("submission", map[string]any{"id": id})
	}
	return record, nil
}

// Submit validates a raw JSON payload and stores it as a pending submission.
// Shape errors come from the JSON schema; content errors use the same step
// rules as the wizard so the message matches what the user would see there.
func (s *SubmissionService) Submit(ctx context.Context, session *domain.Session, body []byte) (*domain.SubmitResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, apperrors.NewValidationError(msgInvalidPayload, map[string]any{"reason": err.Error()})
	}
	if !result.Valid() {
		problems := make([]map[string]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, map[string]string{"field": re.Field(), "description": re.Description()})
		}
		return nil, apperrors.NewValidationError(msgInvalidPayload, map[string]any{"errors": problems})
	}

	var payload domain.SubmissionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewValidationError(msgInvalidPayload, map[string]any{"reason": err.Error()})
	}
	if verr := wizard.ValidateStep(s.variant, wizard.StepMedia, payload.Draft()); verr != nil {
		return nil, apperrors.NewValidationError(verr.Reason, map[string]any{"field": verr.Field, "step": int(verr.Step)})
	}

	online := s.variant.OnlineBusiness && payload.IsOnlineBusiness != nil && *payload.IsOnlineBusiness
	record := &domain.SubmissionRecord{
		ID:               uuid.NewString(),
		OwnerSubject:     session.Subject,
		OwnerEmail:       session.Email,
		Name:             payload.Name,
		CategorySlug:     payload.CategorySlug,
		IsOnlineBusiness: online,
		Status:           domain.SubmissionPending,
		Payload:          payload,
	}
	if err := s.repo.CreateWithinCap(ctx, record, s.variant.MaxSubmissions); err != nil {
		if errors.Is(err, domain.ErrSubmissionCapReached) {
			return nil, apperrors.NewConflict(msgCapReached, map[string]any{"max": s.variant.MaxSubmissions})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("submission stored",
		zap.String("submission_id", record.ID),
		zap.String("owner", record.OwnerSubject),
		zap.Bool("online", record.IsOnlineBusiness))
	s.publishCreated(ctx, session, record)

	return &domain.SubmitResult{
		Success: true,
		Business: domain.BusinessRef{
			ID:     record.ID,
			Name:   record.Name,
			Status: record.Status,
		},
	}, nil
}

func (s *SubmissionService) publishCreated(ctx context.Context, session *domain.Session, record *domain.SubmissionRecord) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:           uuid.NewString(),
		Type:         events.EventSubmissionCreated,
		SubmissionID: record.ID,
		Actor:        events.Actor{Subject: session.Subject, Email: session.Email, Name: session.Name},
		Timestamp:    time.Now().UTC(),
		Payload: events.SubmissionCreatedPayload{
			BusinessName:     record.Name,
			OwnerName:        record.Payload.OwnerName,
			CategorySlug:     record.CategorySlug,
			IsOnlineBusiness: record.IsOnlineBusiness,
			Status:           record.Status,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func identityOf(session *domain.Session) domain.Identity {
	id := domain.Identity{Email: session.Email}
	if session.Name != "" {
		name := session.Name
		id.Name = &name
	}
	return id
}
