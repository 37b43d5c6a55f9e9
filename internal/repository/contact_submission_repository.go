package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corazor/contact-service/internal/domain"
)

// ContactSubmissionRepository defines persistence access for contact submissions.
type ContactSubmissionRepository interface {
	Create(ctx context.Context, submission *domain.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, int64, error)
}

type contactSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewContactSubmissionRepository returns a Postgres-backed implementation.
func NewContactSubmissionRepository(pool *pgxpool.Pool) ContactSubmissionRepository {
	return &contactSubmissionRepository{pool: pool}
}

func (r *contactSubmissionRepository) Create(ctx context.Context, s *domain.ContactSubmission) error {
	const query = `
        INSERT INTO contact_submissions (id, name, email, phone, company, message, ip_address, user_agent)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		s.Phone,
		s.Company,
		s.Message,
		s.IPAddress,
		s.UserAgent,
	).Scan(&s.CreatedAt)
}

func (r *contactSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	const query = `
        SELECT id::text, name, email, phone, company, message, ip_address, user_agent, created_at
        FROM contact_submissions WHERE id=$1`

	var s domain.ContactSubmission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Company,
		&s.Message,
		&s.IPAddress,
		&s.UserAgent,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *contactSubmissionRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
        SELECT id::text, name, email, phone, company, message, ip_address, user_agent, created_at
        FROM contact_submissions
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]domain.ContactSubmission, 0, limit)
	for rows.Next() {
		var s domain.ContactSubmission
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Phone,
			&s.Company,
			&s.Message,
			&s.IPAddress,
			&s.UserAgent,
			&s.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
