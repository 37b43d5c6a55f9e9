package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/corazor/contact-service/internal/config"
	"github.com/corazor/contact-service/internal/events"
	"github.com/corazor/contact-service/internal/notify"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	email      notify.EmailSender
	crm        notify.WebhookSender
	logger     *zap.Logger
	cfg        config.ContactConfig
}

// NewNotificationService creates the service. email and crm may be nil when
// the matching integration is not configured.
func NewNotificationService(dispatcher events.Dispatcher, email notify.EmailSender, crm notify.WebhookSender, logger *zap.Logger, cfg config.ContactConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		email:      email,
		crm:        crm,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Debug("ContactSubmitted",
		zap.String("submission_id", payload.Submission.ID),
		zap.Bool("stored", payload.Stored),
		zap.String("recipient", n.cfg.RecipientEmail))

	return errors.Join(
		n.sendEmailNotification(ctx, payload),
		n.sendCRMWebhook(ctx, payload),
	)
}

func (n *NotificationService) sendEmailNotification(ctx context.Context, payload events.ContactSubmittedPayload) error {
	if n.email == nil || strings.TrimSpace(n.cfg.RecipientEmail) == "" {
		return nil
	}
	if err := n.email.SendSubmission(ctx, n.cfg.RecipientEmail, payload.Submission); err != nil {
		return err
	}
	n.logger.Info("submission email sent",
		zap.String("submission_id", payload.Submission.ID),
		zap.String("to", n.cfg.RecipientEmail))
	return nil
}

func (n *NotificationService) sendCRMWebhook(ctx context.Context, payload events.ContactSubmittedPayload) error {
	if n.crm == nil {
		return nil
	}
	if err := n.crm.PostSubmission(ctx, payload.Submission); err != nil {
		return err
	}
	n.logger.Info("submission forwarded to crm", zap.String("submission_id", payload.Submission.ID))
	return nil
}
