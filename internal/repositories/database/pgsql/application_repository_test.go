package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewApplication_SameStatusReportsUnchanged(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxApplicationRepository(mock)
	reviewer := "admin-1"
	reviewedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlLike(`SELECT status, user_id FROM guide_applications WHERE application_id = $1 FOR UPDATE`)).
		WithArgs("app-1").
		WillReturnRows(pgxmock.NewRows([]string{"status", "user_id"}).AddRow("APPROVED", "u1"))
	mock.ExpectQuery(sqlLike(`FROM guide_applications WHERE application_id = $1;`)).
		WithArgs("app-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"application_id", "user_id", "full_name", "phone", "bio", "languages", "experience_years",
			"id_document_url", "status", "reviewed_by", "reviewed_at", "created_at",
		}).AddRow("app-1", "u1", "Ana Guide", "+351900000000", "Ten years walking Lisbon.", []string{"en"}, 10,
			"", "APPROVED", &reviewer, &reviewedAt, reviewedAt.Add(-24*time.Hour)))
	mock.ExpectRollback()

	app, changed, err := repo.ReviewApplication(context.Background(), "app-1", domain.ApplicationApproved, "admin-2", time.Now().UTC())

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.ApplicationApproved, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
