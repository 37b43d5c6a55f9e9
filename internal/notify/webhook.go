package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/corazor/contact-service/internal/domain"
)

const defaultWebhookTimeout = 5 * time.Second

// CRMLead is the JSON document posted to the CRM webhook.
type CRMLead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"message"`
	Source      string    `json:"source"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// CRMWebhook posts submissions as leads to a CRM endpoint.
type CRMWebhook struct {
	url     string
	source  string
	timeout time.Duration
}

// NewCRMWebhook builds a webhook sender. source identifies the site in the lead.
func NewCRMWebhook(url, source string, timeout time.Duration) *CRMWebhook {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &CRMWebhook{url: url, source: source, timeout: timeout}
}

// PostSubmission implements WebhookSender. The deadline is the shorter of
// ctx and the configured timeout.
func (w *CRMWebhook) PostSubmission(ctx context.Context, submission domain.ContactSubmission) error {
	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ctx.Err()
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	lead := CRMLead{
		ID:          submission.ID,
		Name:        submission.Name,
		Email:       submission.Email,
		Phone:       submission.Phone,
		Company:     submission.Company,
		Message:     submission.Message,
		Source:      w.source,
		SubmittedAt: submission.CreatedAt.UTC(),
	}

	agent := fiber.Post(w.url)
	agent.JSON(lead)
	agent.Timeout(timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("post crm lead: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("post crm lead: unexpected status %d: %s", code, truncate(string(body), 200))
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
