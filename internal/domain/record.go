package domain

import (
	"errors"
	"time"
)

// ErrSubmissionCapReached rejects a submission beyond the account limit.
var ErrSubmissionCapReached = errors.New("submission cap reached")

// SubmissionRecord is a stored submission in the directory API.
type SubmissionRecord struct {
	ID               string
	OwnerSubject     string
	OwnerEmail       string
	Name             string
	CategorySlug     string
	IsOnlineBusiness bool
	Status           SubmissionState
	Payload          SubmissionPayload
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Summary projects the record into the status report shape.
func (r SubmissionRecord) Summary() Submission {
	return Submission{
		ID:               r.ID,
		Name:             r.Name,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		IsOnlineBusiness: r.IsOnlineBusiness,
	}
}
