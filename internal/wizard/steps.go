package wizard

import (
	"errors"
	"fmt"
)

// Step is one screen of the four-step wizard.
type Step int

const (
	StepIdentity Step = iota + 1
	StepLocation
	StepContact
	StepMedia
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepLocation:
		return "location"
	case StepContact:
		return "contact"
	case StepMedia:
		return "media"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Phase is the lifecycle position of a wizard.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
	PhaseDiscarded  Phase = "discarded"
)

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseSubmitted || p == PhaseDiscarded
}

var (
	ErrNoNextStep         = errors.New("wizard: already on the last step")
	ErrNoPreviousStep     = errors.New("wizard: already on the first step")
	ErrNotOnFinalStep     = errors.New("wizard: submit is only allowed on the media step")
	ErrSubmissionInFlight = errors.New("wizard: submission already in progress")
	ErrUploadsPending     = errors.New("wizard: uploads still in progress")
	ErrUploadInProgress   = errors.New("wizard: upload already in progress for this field")
	ErrClosed             = errors.New("wizard: closed")
	ErrNotEligible        = errors.New("wizard: account cannot submit more businesses")
	ErrFieldUnsupported   = errors.New("wizard: field not available in this variant")
)

// ServiceFailure carries the user-facing message of a failed remote call.
type ServiceFailure struct {
	Message string
	Err     error
}

func (e *ServiceFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceFailure) Unwrap() error { return e.Err }

const (
	msgLoadFailed   = "Gagal memuat data. Silakan refresh halaman."
	msgSubmitFailed = "Gagal mengirim data. Silakan coba lagi."
	msgUploadFailed = "Gagal mengupload gambar"
	msgUploadsBusy  = "Tunggu hingga upload gambar selesai"
)

// userMessage returns the message a remote error wants shown verbatim, or fallback.
func userMessage(err error, fallback string) string {
	var msg interface{ UserMessage() string }
	if errors.As(err, &msg) && msg.UserMessage() != "" {
		return msg.UserMessage()
	}
	return fallback
}

// Message returns the text shown to the user for err, or "" when err carries
// none.
func Message(err error) string {
	var (
		verr    *ValidationError
		uerr    *UploadError
		failure *ServiceFailure
	)
	switch {
	case errors.As(err, &verr):
		return verr.Reason
	case errors.As(err, &uerr):
		return uerr.Reason
	case errors.As(err, &failure):
		return failure.Message
	case errors.Is(err, ErrUploadsPending):
		return msgUploadsBusy
	}
	return ""
}
