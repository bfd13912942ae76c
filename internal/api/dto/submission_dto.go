package dto

import (
	"time"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// SubmissionDetail is one stored submission as returned by the directory API.
type SubmissionDetail struct {
	ID        string                   `json:"id"`
	Status    domain.SubmissionState   `json:"status"`
	Title     string                   `json:"title"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Business  domain.SubmissionPayload `json:"business"`
}

// NewSubmissionDetail projects a stored record.
func NewSubmissionDetail(record *domain.SubmissionRecord) SubmissionDetail {
	return SubmissionDetail{
		ID:        record.ID,
		Status:    record.Status,
		Title:     record.Status.Title(),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Business:  record.Payload,
	}
}
