package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	GuidePostRepo    GuidePostRepositoryFacade
	AvailabilityRepo AvailabilityRepositoryFacade
	BookingRepo      BookingRepositoryFacade
	FinanceRepo      FinanceRepositoryFacade
	ApplicationRepo  ApplicationRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ReviewRepo       ReviewRepositoryFacade
	ReportingRepo    ReportingRepository
}
