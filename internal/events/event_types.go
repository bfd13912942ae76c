package events

import (
	"time"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionCreated EventType = "submission_created"
)

// Actor is the account that caused an event.
type Actor struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	SubmissionID string      `json:"submission_id"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// SubmissionCreatedPayload payload.
type SubmissionCreatedPayload struct {
	BusinessName     string                 `json:"business_name"`
	OwnerName        string                 `json:"owner_name"`
	CategorySlug     string                 `json:"category_slug"`
	IsOnlineBusiness bool                   `json:"is_online_business"`
	Status           domain.SubmissionState `json:"status"`
}
