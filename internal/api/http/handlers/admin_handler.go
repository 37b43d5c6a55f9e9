package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corazor/contact-service/internal/api/dto"
	"github.com/corazor/contact-service/internal/domain"
	"github.com/corazor/contact-service/internal/observability"
	"github.com/corazor/contact-service/internal/service"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

// AdminHandler exposes the read-only admin API.
type AdminHandler struct {
	admin   *service.AdminService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{admin: adminService, metrics: metrics}
}

// Enabled reports whether the admin routes should be registered.
func (h *AdminHandler) Enabled() bool {
	return h != nil && h.admin != nil && h.admin.Enabled()
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, exp, err := h.admin.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// ListSubmissions handles GET /api/admin/submissions.
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	page, err := h.admin.ListSubmissions(c.UserContext(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.SubmissionResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, submissionResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"meta":    dto.PageMeta{Total: page.Total, Limit: page.Limit, Offset: page.Offset},
	})
}

// GetSubmission handles GET /api/admin/submissions/:id.
func (h *AdminHandler) GetSubmission(c *fiber.Ctx) error {
	sub, err := h.admin.GetSubmission(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": submissionResponse(sub)})
}

// Metrics handles GET /api/admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.metrics.Snapshot()})
}

func submissionResponse(s *domain.ContactSubmission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Company:   s.Company,
		Message:   s.Message,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
	}
}
