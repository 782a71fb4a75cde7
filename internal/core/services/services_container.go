package services

import (
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/platform/config"
)

// Dependencies groups the outbound adapters the services talk to.
// Guard, Publisher, Analytics and GoogleVerifier may be nil.
type Dependencies struct {
	Capturer       gateways.PaymentCapturer
	Guard          gateways.CaptureGuard
	Publisher      gateways.EventPublisher
	Analytics      gateways.Analytics
	GoogleVerifier gateways.GoogleTokenVerifier
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notifications are a collaborator of most other services, so they come first.
	container.Notification = NewNotificationService(repos.NotificationRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User, deps.GoogleVerifier)
	container.GuidePost = NewGuidePostService(repos.GuidePostRepo)
	container.Availability = NewAvailabilityService(repos.AvailabilityRepo, repos.GuidePostRepo)

	bookingOpts := []BookingServiceOption{
		WithNotifier(container.Notification),
		WithCommissionRate(cfg.PlatformCommissionRate),
	}
	if deps.Guard != nil {
		bookingOpts = append(bookingOpts, WithCaptureGuard(deps.Guard, cfg.CaptureLockTTL))
	}
	if deps.Publisher != nil {
		bookingOpts = append(bookingOpts, WithEventPublisher(deps.Publisher))
	}
	if deps.Analytics != nil {
		bookingOpts = append(bookingOpts, WithAnalytics(deps.Analytics))
	}
	container.Booking = NewBookingService(
		repos.BookingRepo,
		repos.GuidePostRepo,
		container.Availability,
		deps.Capturer,
		bookingOpts...,
	)

	container.Finance = NewFinanceService(repos.FinanceRepo, container.Notification, deps.Publisher)
	container.Application = NewApplicationService(repos.ApplicationRepo, container.Notification, deps.Publisher)
	container.Review = NewReviewService(repos.ReviewRepo, repos.BookingRepo, container.Notification)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
