// Package notify delivers accepted contact submissions to people and systems
// outside the service: an inbox via Resend and a CRM via webhook.
package notify

import (
	"context"

	"github.com/corazor/contact-service/internal/domain"
)

// EmailSender delivers a submission notification to a recipient.
type EmailSender interface {
	SendSubmission(ctx context.Context, to string, submission domain.ContactSubmission) error
}

// WebhookSender forwards a submission to an external system.
type WebhookSender interface {
	PostSubmission(ctx context.Context, submission domain.ContactSubmission) error
}
