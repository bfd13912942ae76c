package dto

import (
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/wizard"
)

// WizardResponse wraps a wizard view.
type WizardResponse struct {
	Wizard wizard.View `json:"wizard"`
}

// OnlineBusinessRequest toggles the online flag.
type OnlineBusinessRequest struct {
	IsOnlineBusiness *bool `json:"isOnlineBusiness"`
}

// SubmitResponse tells the client where to go after a successful submission.
type SubmitResponse struct {
	Redirect string             `json:"redirect"`
	Business domain.BusinessRef `json:"business"`
}

// RedirectResponse is a bare navigation hint.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// SubmissionStatus is a submission with its display texts.
type SubmissionStatus struct {
	domain.Submission
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatusResponse backs the manage-submissions view.
type StatusResponse struct {
	User           domain.Identity    `json:"user"`
	Submissions    []SubmissionStatus `json:"submissions"`
	CanSubmitMore  bool               `json:"canSubmitMore"`
	RemainingSlots int                `json:"remainingSlots"`
}

// NewStatusResponse decorates a report with state texts.
func NewStatusResponse(report *domain.StatusReport) StatusResponse {
	resp := StatusResponse{
		User:           report.User,
		Submissions:    make([]SubmissionStatus, 0, len(report.Submissions)),
		CanSubmitMore:  report.CanSubmitMore,
		RemainingSlots: report.RemainingSlots,
	}
	for _, s := range report.Submissions {
		resp.Submissions = append(resp.Submissions, SubmissionStatus{
			Submission:  s,
			Title:       s.Status.Title(),
			Description: s.Status.Description(),
		})
	}
	return resp
}
