package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/corazor/contact-service/internal/api/dto"
	"github.com/corazor/contact-service/internal/service"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

// MsgSubmissionReceived acknowledges an accepted submission.
const MsgSubmissionReceived = "Form received successfully. We'll get back to you soon!"

// ContactHandler exposes the public contact form endpoint.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{service: contactService}
}

// Submit handles POST /api/contact. Unparseable JSON and a null body are
// unexpected errors, not validation errors.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	req, err := dto.DecodeContactRequest(c.Body())
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("parse contact payload: %w", err))
	}

	_, err = h.service.Submit(c.UserContext(), service.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Message:   req.Message,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		NonString: req.NonString,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.ContactResponse{
		Success: true,
		Message: MsgSubmissionReceived,
	})
}
