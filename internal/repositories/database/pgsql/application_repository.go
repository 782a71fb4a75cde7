package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const constraintOnePendingApplication = "idx_guide_applications_one_pending"

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(db DB) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

const applicationColumns = `application_id, user_id, full_name, phone, bio, languages, experience_years,
	id_document_url, status, reviewed_by, reviewed_at, created_at`

func scanApplication(row pgx.Row) (domain.GuideApplication, error) {
	var a domain.GuideApplication
	var status string
	err := row.Scan(&a.ApplicationID, &a.UserID, &a.FullName, &a.Phone, &a.Bio, &a.Languages, &a.ExperienceYears,
		&a.IDDocumentURL, &status, &a.ReviewedBy, &a.ReviewedAt, &a.CreatedAt)
	a.Status = domain.ApplicationStatus(status)
	if a.Languages == nil {
		a.Languages = []string{}
	}
	return a, err
}

func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, app domain.GuideApplication) error {
	query := `
		INSERT INTO guide_applications (application_id, user_id, full_name, phone, bio, languages,
			experience_years, id_document_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query, app.ApplicationID, app.UserID, app.FullName, app.Phone, app.Bio, app.Languages,
		app.ExperienceYears, app.IDDocumentURL, string(app.Status), app.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintOnePendingApplication) {
			return fmt.Errorf("%w: user %s already has a pending application", apperrors.ErrDuplicate, app.UserID)
		}
		return fmt.Errorf("failed to save guide application: %w", err)
	}
	return nil
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.GuideApplication, error) {
	return r.findApplication(ctx, r.Pool, applicationID)
}

func (r *PgxApplicationRepository) findApplication(ctx context.Context, q queryRower, applicationID string) (*domain.GuideApplication, error) {
	a, err := scanApplication(q.QueryRow(ctx, `SELECT `+applicationColumns+` FROM guide_applications WHERE application_id = $1;`, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	return &a, nil
}

func (r *PgxApplicationRepository) FindApplicationsByUser(ctx context.Context, userID string) ([]domain.GuideApplication, error) {
	return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM guide_applications WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
}

func (r *PgxApplicationRepository) FindApplications(ctx context.Context, status *domain.ApplicationStatus, limit, offset int) ([]domain.GuideApplication, error) {
	if status == nil {
		return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM guide_applications
			ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, limit, offset)
	}
	return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM guide_applications WHERE status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, string(*status), limit, offset)
}

func (r *PgxApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]domain.GuideApplication, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guide applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.GuideApplication{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guide application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guide applications: %w", err)
	}
	return apps, nil
}

func (r *PgxApplicationRepository) ReviewApplication(ctx context.Context, applicationID string, status domain.ApplicationStatus, reviewerID string, reviewedAt time.Time) (*domain.GuideApplication, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	var current string
	var userID string
	err = tx.QueryRow(ctx, `SELECT status, user_id FROM guide_applications WHERE application_id = $1 FOR UPDATE;`, applicationID).
		Scan(&current, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperrors.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to lock application: %w", err)
	}
	if domain.ApplicationStatus(current) == status {
		app, err := r.findApplication(ctx, tx, applicationID)
		return app, false, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE guide_applications SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE application_id = $1;
	`, applicationID, string(status), reviewerID, reviewedAt); err != nil {
		return nil, false, fmt.Errorf("failed to update application: %w", err)
	}

	if status == domain.ApplicationApproved {
		// Only plain users are promoted; an admin who applies keeps their role.
		if _, err := tx.Exec(ctx, `
			UPDATE users SET role = $2, last_updated_at = $3, last_updated_by = $4
			WHERE user_id = $1 AND role = $5;
		`, userID, string(domain.RoleGuide), reviewedAt, reviewerID, string(domain.RoleUser)); err != nil {
			return nil, false, fmt.Errorf("failed to promote user: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO guide_finances (guide_id, balance, updated_at) VALUES ($1, 0, $2)
			ON CONFLICT (guide_id) DO NOTHING;
		`, userID, reviewedAt); err != nil {
			return nil, false, fmt.Errorf("failed to open guide finances: %w", err)
		}
	}

	reviewed, err := r.findApplication(ctx, tx, applicationID)
	if err != nil {
		return nil, false, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return reviewed, true, nil
}
