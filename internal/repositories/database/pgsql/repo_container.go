package pgsql

import (
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		GuidePostRepo:    newPgxGuidePostRepository(dbPool),
		AvailabilityRepo: newPgxAvailabilityRepository(dbPool),
		BookingRepo:      newPgxBookingRepository(dbPool),
		FinanceRepo:      newPgxFinanceRepository(dbPool),
		ApplicationRepo:  newPgxApplicationRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		ReviewRepo:       newPgxReviewRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
