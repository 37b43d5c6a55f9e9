package events

import (
	"time"

	"github.com/corazor/contact-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactSubmitted EventType = "contact_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactSubmittedPayload carries an accepted submission.
type ContactSubmittedPayload struct {
	Submission domain.ContactSubmission `json:"submission"`
	Stored     bool                     `json:"stored"`
}
