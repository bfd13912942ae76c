package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/observability"
	"github.com/spec-kit/bursa-register/internal/wizard"
)

// ErrWizardNotFound is returned for unknown wizards and for wizards owned by
// another session subject.
var ErrWizardNotFound = errors.New("wizard not found")

// WizardService hosts live wizards for signed-in users.
type WizardService struct {
	registry      *wizard.Registry
	deps          wizard.Dependencies
	variant       domain.Variant
	maxImageBytes int64
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// WizardServiceConfig bundles the wizard collaborators.
type WizardServiceConfig struct {
	Registry      *wizard.Registry
	Sessions      wizard.SessionProvider
	Status        wizard.StatusService
	Submissions   wizard.SubmissionService
	Media         wizard.MediaStore
	Variant       domain.Variant
	MaxImageBytes int64
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewWizardService builds the service.
func NewWizardService(cfg WizardServiceConfig) *WizardService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{
		registry: cfg.Registry,
		deps: wizard.Dependencies{
			Sessions:    cfg.Sessions,
			Status:      cfg.Status,
			Submissions: cfg.Submissions,
			Media:       cfg.Media,
			Logger:      logger,
		},
		variant:       cfg.Variant,
		maxImageBytes: cfg.MaxImageBytes,
		metrics:       cfg.Metrics,
		logger:        logger,
	}
}

// Variant returns the configured flow.
func (s *WizardService) Variant() domain.Variant {
	return s.variant
}

// Status returns the caller's status report for the manage-submissions view.
func (s *WizardService) Status(ctx context.Context) (*domain.StatusReport, error) {
	sess, err := s.deps.Sessions.Session(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.deps.Status.CheckStatus(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		return nil, &wizard.ServiceFailure{Message: "Gagal memuat data. Silakan refresh halaman.", Err: err}
	}
	report.Normalize(s.variant)
	return report, nil
}

// Start opens a new wizard for the caller.
func (s *WizardService) Start(ctx context.Context) (wizard.View, error) {
	w, err := wizard.Start(ctx, s.deps, wizard.Options{
		ID:            uuid.NewString(),
		Variant:       s.variant,
		MaxImageBytes: s.maxImageBytes,
	})
	s.metrics.RecordTransition("start", err)
	if err != nil {
		return wizard.View{}, err
	}
	s.registry.Put(w)
	s.metrics.SetActiveWizards(s.registry.Len())
	return w.Snapshot(), nil
}

// View returns the current state of a wizard.
func (s *WizardService) View(ctx context.Context, id string) (wizard.View, error) {
	w, err := s.lookup(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}
	return w.Snapshot(), nil
}

// Discard abandons a wizard.
func (s *WizardService) Discard(ctx context.Context, id string) error {
	if _, err := s.lookup(ctx, id); err != nil {
		return err
	}
	s.registry.Remove(id)
	s.metrics.SetActiveWizards(s.registry.Len())
	return nil
}

// Apply merges a field change.
func (s *WizardService) Apply(ctx context.Context, id string, patch wizard.DraftPatch) (wizard.View, error) {
	return s.mutate(ctx, id, "", func(w *wizard.Wizard) error { return w.Apply(patch) })
}

// SetOnlineBusiness toggles the online flag.
func (s *WizardService) SetOnlineBusiness(ctx context.Context, id string, online bool) (wizard.View, error) {
	return s.mutate(ctx, id, "", func(w *wizard.Wizard) error { return w.SetOnlineBusiness(online) })
}

// Next advances when the current step is valid.
func (s *WizardService) Next(ctx context.Context, id string) (wizard.View, error) {
	return s.mutate(ctx, id, "next", (*wizard.Wizard).Next)
}

// Back returns to the previous step.
func (s *WizardService) Back(ctx context.Context, id string) (wizard.View, error) {
	return s.mutate(ctx, id, "back", (*wizard.Wizard).Back)
}

// Submit sends the draft. A successful submission removes the wizard.
func (s *WizardService) Submit(ctx context.Context, id string) (*domain.SubmitResult, error) {
	w, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := w.Submit(ctx)
	s.metrics.RecordTransition("submit", err)
	var failure *wizard.ServiceFailure
	if err == nil || errors.As(err, &failure) {
		s.metrics.RecordSubmission(err)
	}
	if err != nil {
		return nil, err
	}
	s.registry.Remove(id)
	s.metrics.SetActiveWizards(s.registry.Len())
	s.logger.Info("wizard completed", zap.String("wizard_id", id), zap.String("business_id", result.Business.ID))
	return result, nil
}

// UploadLogo uploads and sets the logo.
func (s *WizardService) UploadLogo(ctx context.Context, id string, file wizard.MediaFile) (wizard.View, error) {
	w, err := s.lookup(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}
	_, err = w.UploadLogo(ctx, file)
	s.metrics.RecordUpload("logo", err)
	return w.Snapshot(), err
}

// RemoveLogo clears the logo.
func (s *WizardService) RemoveLogo(ctx context.Context, id string) (wizard.View, error) {
	return s.mutate(ctx, id, "", (*wizard.Wizard).RemoveLogo)
}

// UploadPhotos uploads a batch of gallery photos.
func (s *WizardService) UploadPhotos(ctx context.Context, id string, files []wizard.MediaFile) (wizard.View, error) {
	w, err := s.lookup(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}
	_, err = w.UploadPhotos(ctx, files)
	s.metrics.RecordUpload("photos", err)
	return w.Snapshot(), err
}

// RemovePhoto deletes one gallery photo.
func (s *WizardService) RemovePhoto(ctx context.Context, id string, index int) (wizard.View, error) {
	return s.mutate(ctx, id, "", func(w *wizard.Wizard) error { return w.RemovePhoto(index) })
}

// DiscardOwnedBy drops every wizard of subject, used on sign-out.
func (s *WizardService) DiscardOwnedBy(subject string) int {
	removed := s.registry.RemoveWhere(func(w *wizard.Wizard) bool { return w.Owner() == subject })
	s.metrics.SetActiveWizards(s.registry.Len())
	return removed
}

func (s *WizardService) mutate(ctx context.Context, id, transition string, op func(*wizard.Wizard) error) (wizard.View, error) {
	w, err := s.lookup(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}
	err = op(w)
	if transition != "" {
		s.metrics.RecordTransition(transition, err)
	}
	return w.Snapshot(), err
}

func (s *WizardService) lookup(ctx context.Context, id string) (*wizard.Wizard, error) {
	sess, err := s.deps.Sessions.Session(ctx)
	if err != nil {
		return nil, err
	}
	w, ok := s.registry.Get(id)
	if !ok || w.Owner() != sess.Subject {
		return nil, ErrWizardNotFound
	}
	return w, nil
}
