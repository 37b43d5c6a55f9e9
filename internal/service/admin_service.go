package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corazor/contact-service/internal/auth"
	"github.com/corazor/contact-service/internal/config"
	"github.com/corazor/contact-service/internal/domain"
	"github.com/corazor/contact-service/internal/repository"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AdminService lets the site owner sign in and read stored submissions.
type AdminService struct {
	email        string
	passwordHash string
	tokenMgr     *auth.TokenManager
	submissions  repository.ContactSubmissionRepository
}

// NewAdminService builds the service. submissions may be nil when no
// database is configured.
func NewAdminService(cfg config.AuthConfig, submissions repository.ContactSubmissionRepository) *AdminService {
	return &AdminService{
		email:        cfg.AdminEmail,
		passwordHash: cfg.AdminPasswordHash,
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		submissions:  submissions,
	}
}

// Enabled reports whether an admin password is configured. Without one the
// admin API must not be served, since tokens would be the only gate.
func (s *AdminService) Enabled() bool {
	return s.passwordHash != ""
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AdminService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login checks the admin credentials and issues an access token.
func (s *AdminService) Login(_ context.Context, email, password string) (string, time.Time, error) {
	if s.passwordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login disabled")
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.email) {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokenMgr.GenerateToken(s.email, domain.SubjectTypeAdmin)
}

// Page is one page of stored submissions.
type Page struct {
	Items  []domain.ContactSubmission
	Total  int64
	Limit  int
	Offset int
}

// ListSubmissions returns stored submissions, newest first.
func (s *AdminService) ListSubmissions(ctx context.Context, limit, offset int) (*Page, error) {
	if s.submissions == nil {
		return nil, apperrors.NewServiceUnavailable("submission storage not configured")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.submissions.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Page{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetSubmission returns a single stored submission.
func (s *AdminService) GetSubmission(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	if s.submissions == nil {
		return nil, apperrors.NewServiceUnavailable("submission storage not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("submission", map[string]any{"id": id})
	}
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sub, nil
}
