package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/corazor/contact-service/internal/domain"
)

type fakeSubmissionRepo struct {
	mu        sync.Mutex
	items     []domain.ContactSubmission
	createErr error
	listErr   error
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *domain.ContactSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSubmissionRepo) List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.items))
	if offset >= len(f.items) {
		return []domain.ContactSubmission{}, total, nil
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	return append([]domain.ContactSubmission{}, f.items[offset:end]...), total, nil
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeEmailSender) SendSubmission(ctx context.Context, to string, s domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+s.ID)
	return nil
}

type fakeWebhook struct {
	mu     sync.Mutex
	posted []string
	err    error
}

func (f *fakeWebhook) PostSubmission(ctx context.Context, s domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, s.ID)
	return nil
}

var errBoom = errors.New("boom")
