package handlers

import (
	"errors"
	"net/http"

	"github.com/spec-kit/bursa-register/internal/auth"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/service"
	"github.com/spec-kit/bursa-register/internal/wizard"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

// Redirects names the pages a client is sent to instead of seeing an error.
type Redirects struct {
	SignIn           string
	AlreadySubmitted string
	Success          string
}

// mapError converts wizard and service errors to the HTTP taxonomy.
func (r Redirects) mapError(err error) error {
	if err == nil {
		return nil
	}
	var (
		verr    *wizard.ValidationError
		ferr    *wizard.FieldError
		uerr    *wizard.UploadError
		failure *wizard.ServiceFailure
	)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return apperrors.NewRedirect(http.StatusUnauthorized, "NO_SESSION", r.SignIn)
	case errors.Is(err, wizard.ErrNotEligible):
		return apperrors.NewRedirect(http.StatusConflict, "NOT_ELIGIBLE", r.AlreadySubmitted)
	case errors.As(err, &verr):
		return apperrors.NewDomainError("STEP_INVALID", verr.Reason, http.StatusUnprocessableEntity,
			map[string]any{"step": verr.Step.String(), "field": verr.Field})
	case errors.As(err, &ferr):
		return apperrors.NewValidationError(ferr.Reason, map[string]any{"field": ferr.Field})
	case errors.As(err, &uerr):
		if uerr.Err != nil {
			return &apperrors.DomainError{
				Code:       "UPLOAD_FAILED",
				Message:    uerr.Reason,
				HTTPStatus: http.StatusBadGateway,
				Details:    map[string]any{"field": uerr.Field},
				Err:        uerr.Err,
			}
		}
		return apperrors.NewDomainError("UPLOAD_REJECTED", uerr.Reason, http.StatusBadRequest,
			map[string]any{"field": uerr.Field})
	case errors.As(err, &failure):
		return apperrors.NewUpstreamError(failure.Message, failure.Err)
	case errors.Is(err, wizard.ErrNoNextStep), errors.Is(err, wizard.ErrNoPreviousStep), errors.Is(err, wizard.ErrNotOnFinalStep):
		return apperrors.NewDomainError("INVALID_TRANSITION", err.Error(), http.StatusConflict, nil)
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		return apperrors.NewDomainError("SUBMISSION_IN_FLIGHT", err.Error(), http.StatusConflict, nil)
	case errors.Is(err, wizard.ErrUploadsPending):
		return apperrors.NewDomainError("UPLOADS_PENDING", wizard.Message(err), http.StatusConflict, nil)
	case errors.Is(err, wizard.ErrUploadInProgress):
		return apperrors.NewDomainError("UPLOAD_IN_PROGRESS", err.Error(), http.StatusConflict, nil)
	case errors.Is(err, wizard.ErrClosed):
		return apperrors.NewDomainError("WIZARD_CLOSED", err.Error(), http.StatusGone, nil)
	case errors.Is(err, service.ErrWizardNotFound):
		return apperrors.NewNotFound("wizard", nil)
	case errors.Is(err, service.ErrSignInUnavailable):
		return apperrors.NewDomainError("SIGNIN_UNAVAILABLE", err.Error(), http.StatusServiceUnavailable, nil)
	case errors.Is(err, auth.ErrEmailNotVerified):
		return apperrors.NewForbidden(err.Error())
	}
	return apperrors.MapError(err)
}
