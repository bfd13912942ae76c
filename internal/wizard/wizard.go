package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// SessionProvider resolves the session of the current caller on demand.
type SessionProvider interface {
	Session(ctx context.Context) (*domain.Session, error)
	SignOut(ctx context.Context) error
}

// StatusService reports existing submissions and eligibility.
type StatusService interface {
	CheckStatus(ctx context.Context, token string) (*domain.StatusReport, error)
}

// SubmissionService accepts the final payload.
type SubmissionService interface {
	Submit(ctx context.Context, token string, payload domain.SubmissionPayload) (*domain.SubmitResult, error)
}

// MediaStore uploads an image and returns its public URL.
type MediaStore interface {
	Upload(ctx context.Context, file MediaFile) (string, error)
}

// Dependencies are the collaborators of a wizard.
type Dependencies struct {
	Sessions    SessionProvider
	Status      StatusService
	Submissions SubmissionService
	Media       MediaStore
	Logger      *zap.Logger
}

// Options configure a new wizard.
type Options struct {
	ID            string
	Variant       domain.Variant
	MaxImageBytes int64
}

// Wizard is the state machine of one registration attempt.
type Wizard struct {
	id            string
	owner         string
	user          domain.Identity
	variant       domain.Variant
	maxImageBytes int64
	createdAt     time.Time
	deps          Dependencies
	logger        *zap.Logger

	mu      sync.Mutex
	step    Step
	phase   Phase
	draft   domain.DraftSubmission
	err     string
	uploads Uploads
	result  *domain.SubmitResult
}

// View is a point-in-time copy of the wizard state.
type View struct {
	ID         string                 `json:"id"`
	Step       Step                   `json:"step"`
	Phase      Phase                  `json:"phase"`
	Submitting bool                   `json:"submitting"`
	Error      string                 `json:"error,omitempty"`
	Draft      domain.DraftSubmission `json:"draft"`
	Uploads    Uploads                `json:"uploads"`
	Variant    domain.Variant         `json:"variant"`
	User       domain.Identity        `json:"user"`
	Result     *domain.SubmitResult   `json:"result,omitempty"`
}

// Start runs the entry precondition and returns a wizard on the identity step.
// It fails with domain.ErrNoSession when nobody is signed in and with
// ErrNotEligible when the account has no submission slot left.
func Start(ctx context.Context, deps Dependencies, opts Options) (*Wizard, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sess, err := deps.Sessions.Session(ctx)
	if err != nil {
		return nil, err
	}

	report, err := deps.Status.CheckStatus(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		logger.Warn("status check failed", zap.String("subject", sess.Subject), zap.Error(err))
		return nil, &ServiceFailure{Message: msgLoadFailed, Err: err}
	}
	report.Normalize(opts.Variant)
	if !report.CanSubmitMore {
		return nil, ErrNotEligible
	}

	maxBytes := opts.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}

	w := &Wizard{
		id:            opts.ID,
		owner:         sess.Subject,
		user:          report.User,
		variant:       opts.Variant,
		maxImageBytes: maxBytes,
		createdAt:     time.Now(),
		deps:          deps,
		logger:        logger.With(zap.String("wizard_id", opts.ID)),
		step:          StepIdentity,
		phase:         PhaseEditing,
		draft:         opts.Variant.NewDraft(report.User.DisplayName()),
	}
	w.logger.Debug("wizard started", zap.String("subject", sess.Subject), zap.Int("remaining_slots", report.RemainingSlots))
	return w, nil
}

// ID returns the wizard identifier.
func (w *Wizard) ID() string { return w.id }

// Owner returns the session subject that started the wizard.
func (w *Wizard) Owner() string { return w.owner }

// Snapshot copies the current state.
func (w *Wizard) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Wizard) viewLocked() View {
	return View{
		ID:         w.id,
		Step:       w.step,
		Phase:      w.phase,
		Submitting: w.phase == PhaseSubmitting,
		Error:      w.err,
		Draft:      w.draft.Clone(),
		Uploads:    w.uploads,
		Variant:    w.variant,
		User:       w.user,
		Result:     w.result,
	}
}

func (w *Wizard) checkOpenLocked() error {
	if w.phase.Terminal() {
		return ErrClosed
	}
	return nil
}

// Next validates the current step and advances on success. On failure the
// reason is stored as the wizard error and the step is unchanged.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if w.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	if w.step >= StepMedia {
		return ErrNoNextStep
	}
	if verr := ValidateStep(w.variant, w.step, w.draft); verr != nil {
		w.err = verr.Reason
		w.logger.Debug("step validation failed", zap.Stringer("step", w.step), zap.String("field", verr.Field))
		return verr
	}
	w.step++
	w.err = ""
	return nil
}

// Back returns to the previous step without validation.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if w.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	if w.step <= StepIdentity {
		return ErrNoPreviousStep
	}
	w.step--
	w.err = ""
	return nil
}

// Apply merges a field change into the draft and clears the wizard error.
func (w *Wizard) Apply(patch DraftPatch) error {
	if err := patch.check(w.variant); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	patch.merge(&w.draft)
	w.err = ""
	return nil
}

// SetOnlineBusiness toggles the online flag. Location fields already entered
// are kept and simply ignored while the flag is on.
func (w *Wizard) SetOnlineBusiness(online bool) error {
	return w.Apply(DraftPatch{IsOnlineBusiness: &online})
}

// Submit sends the draft to the submission service. It is only legal on the
// media step and at most one submission can be in flight.
func (w *Wizard) Submit(ctx context.Context) (*domain.SubmitResult, error) {
	payload, err := w.beginSubmit()
	if err != nil {
		return nil, err
	}

	result, err := w.send(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseDiscarded {
		w.logger.Debug("submission resolved after discard")
		return nil, ErrClosed
	}
	if err != nil {
		w.phase = PhaseEditing
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		msg := userMessage(err, msgSubmitFailed)
		w.err = msg
		w.logger.Warn("submission failed", zap.Error(err))
		return nil, &ServiceFailure{Message: msg, Err: err}
	}
	w.phase = PhaseSubmitted
	w.result = result
	w.logger.Info("business submitted", zap.String("business_id", result.Business.ID))
	return result, nil
}

func (w *Wizard) beginSubmit() (domain.SubmissionPayload, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpenLocked(); err != nil {
		return domain.SubmissionPayload{}, err
	}
	if w.phase == PhaseSubmitting {
		return domain.SubmissionPayload{}, ErrSubmissionInFlight
	}
	if w.step != StepMedia {
		w.logger.Warn("blocked submission: not on final step", zap.Stringer("step", w.step))
		return domain.SubmissionPayload{}, ErrNotOnFinalStep
	}
	if verr := ValidateStep(w.variant, StepMedia, w.draft); verr != nil {
		w.err = verr.Reason
		return domain.SubmissionPayload{}, verr
	}
	if w.uploads.busy() {
		w.err = msgUploadsBusy
		return domain.SubmissionPayload{}, ErrUploadsPending
	}
	w.phase = PhaseSubmitting
	w.err = ""
	return ProjectPayload(w.variant, w.draft), nil
}

func (w *Wizard) send(ctx context.Context, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	sess, err := w.deps.Sessions.Session(ctx)
	if err != nil {
		return nil, err
	}
	result, err := w.deps.Submissions.Submit(ctx, sess.Token, payload)
	if err != nil {
		return nil, fmt.Errorf("submit business: %w", err)
	}
	return result, nil
}

// Discard tears the wizard down. Pending work that resolves later is dropped.
func (w *Wizard) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase.Terminal() {
		return
	}
	w.phase = PhaseDiscarded
	w.logger.Debug("wizard discarded")
}
