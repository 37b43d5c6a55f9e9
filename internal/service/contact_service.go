package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corazor/contact-service/internal/config"
	"github.com/corazor/contact-service/internal/domain"
	"github.com/corazor/contact-service/internal/events"
	"github.com/corazor/contact-service/internal/observability"
	"github.com/corazor/contact-service/internal/repository"
	"github.com/corazor/contact-service/internal/validation"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

const logMessagePreview = 100

// ContactService validates and acknowledges contact form submissions.
type ContactService struct {
	validator  *validation.ContactValidator
	repo       repository.ContactSubmissionRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	latency    time.Duration
	production bool
	now        func() time.Time
}

// ContactDependencies bundles collaborators for the contact service. Repo and
// Dispatcher are optional.
type ContactDependencies struct {
	Validator  *validation.ContactValidator
	Repo       repository.ContactSubmissionRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// SubmitInput is a raw submission plus request metadata.
type SubmitInput struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Message   string
	IPAddress string
	UserAgent string
	// NonString names fields that were submitted as non-string JSON values.
	NonString []string
}

// NewContactService builds the service.
func NewContactService(cfg config.Config, deps ContactDependencies) *ContactService {
	v := deps.Validator
	if v == nil {
		v = validation.NewContactValidator()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		validator:  v,
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		latency:    cfg.Contact.ProcessingLatency(),
		production: cfg.App.IsProduction(),
		now:        time.Now,
	}
}

// Submit validates the input and, when valid, records and acknowledges it.
// Validation failures come back as 400 DomainErrors carrying the user-facing
// message; anything else is an internal error.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (*domain.ContactSubmission, error) {
	if err := s.validator.Validate(validation.ContactInput{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Message:   in.Message,
		NonString: in.NonString,
	}); err != nil {
		return nil, err
	}

	submission := &domain.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Message:   in.Message,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: s.now().UTC(),
	}

	s.logSubmission(submission)

	stored := false
	if s.repo != nil {
		if err := s.repo.Create(ctx, submission); err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("store submission: %w", err))
		}
		stored = true
	}

	if err := s.wait(ctx); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.notify(ctx, submission, stored)
	s.metrics.RecordSubmission()
	return submission, nil
}

func (s *ContactService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *ContactService) notify(ctx context.Context, submission *domain.ContactSubmission, stored bool) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContactSubmitted,
		Timestamp: s.now().UTC(),
		Payload:   events.ContactSubmittedPayload{Submission: *submission, Stored: stored},
	})
	if err != nil {
		s.logger.Warn("contact submission notification failed",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
	}
}

// logSubmission writes the submission to the log. Production logs carry no
// contact details beyond a masked email.
func (s *ContactService) logSubmission(submission *domain.ContactSubmission) {
	if s.production {
		s.logger.Info("contact form submission",
			zap.String("submission_id", submission.ID),
			zap.String("email", MaskEmail(submission.Email)),
			zap.Time("timestamp", submission.CreatedAt))
		return
	}
	s.logger.Info("contact form submission",
		zap.String("submission_id", submission.ID),
		zap.String("name", submission.Name),
		zap.String("email", submission.Email),
		zap.String("phone", submission.Phone),
		zap.String("company", submission.CompanyOrNA()),
		zap.String("message", Preview(submission.Message, logMessagePreview)))
}

// MaskEmail keeps the first three characters of an address.
func MaskEmail(email string) string {
	if utf8.RuneCountInString(email) <= 3 {
		return "***"
	}
	return string([]rune(email)[:3]) + "***"
}

// Preview cuts s to n characters and appends an ellipsis.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s + "..."
	}
	return string(r[:n]) + "..."
}
