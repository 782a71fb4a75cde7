package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/borport/borport_backend/internal/utils/accounting"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCaptureLockTTL = 30 * time.Second

// BookingConfirmedEvent is published after a booking is confirmed.
type BookingConfirmedEvent struct {
	BookingID   string          `json:"bookingId"`
	GuidePostID string          `json:"guidePostId"`
	GuideID     string          `json:"guideId"`
	UserID      string          `json:"userId"`
	Date        string          `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	GuideCredit decimal.Decimal `json:"guideCredit"`
	OrderID     string          `json:"orderId"`
	CaptureID   string          `json:"captureId"`
	ConfirmedAt time.Time       `json:"confirmedAt"`
}

// RefundRequiredEvent is published when money was captured for a booking that could not be confirmed.
type RefundRequiredEvent struct {
	BookingID      string          `json:"bookingId"`
	UserID         string          `json:"userId"`
	OrderID        string          `json:"orderId"`
	CaptureID      string          `json:"captureId"`
	CapturedAmount decimal.Decimal `json:"capturedAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Reason         string          `json:"reason"`
	DetectedAt     time.Time       `json:"detectedAt"`
}

// BookingCancelledEvent is published after a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID    string    `json:"bookingId"`
	GuidePostID  string    `json:"guidePostId"`
	UserID       string    `json:"userId"`
	Date         string    `json:"date"`
	WasConfirmed bool      `json:"wasConfirmed"`
	CancelledBy  string    `json:"cancelledBy"`
	Reason       string    `json:"reason,omitempty"`
	CancelledAt  time.Time `json:"cancelledAt"`
}

type bookingService struct {
	BaseService
	bookingRepo    portsrepo.BookingRepositoryFacade
	postRepo       portsrepo.GuidePostReader
	availability   portssvc.AvailabilitySvc
	capturer       gateways.PaymentCapturer
	guard          gateways.CaptureGuard
	publisher      gateways.EventPublisher
	analytics      gateways.Analytics
	notifier       portssvc.NotificationSvc
	commissionRate decimal.Decimal
	lockTTL        time.Duration
}

// BookingServiceOption is a functional option for configuring the booking service
type BookingServiceOption func(*bookingService)

// WithCaptureGuard serializes captures of the same payment order.
func WithCaptureGuard(guard gateways.CaptureGuard, ttl time.Duration) BookingServiceOption {
	return func(s *bookingService) {
		s.guard = guard
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithEventPublisher emits booking domain events.
func WithEventPublisher(publisher gateways.EventPublisher) BookingServiceOption {
	return func(s *bookingService) {
		s.publisher = publisher
	}
}

// WithAnalytics records booking analytics events.
func WithAnalytics(analytics gateways.Analytics) BookingServiceOption {
	return func(s *bookingService) {
		s.analytics = analytics
	}
}

// WithNotifier sends in-app notifications on booking changes.
func WithNotifier(notifier portssvc.NotificationSvc) BookingServiceOption {
	return func(s *bookingService) {
		s.notifier = notifier
	}
}

// WithCommissionRate sets the platform's share of every booking.
func WithCommissionRate(rate decimal.Decimal) BookingServiceOption {
	return func(s *bookingService) {
		s.commissionRate = rate
	}
}

// WithBookingClock overrides the clock, for tests.
func WithBookingClock(clock func() time.Time) BookingServiceOption {
	return func(s *bookingService) {
		s.clock = clock
	}
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	postRepo portsrepo.GuidePostReader,
	availability portssvc.AvailabilitySvc,
	capturer gateways.PaymentCapturer,
	options ...BookingServiceOption,
) portssvc.BookingSvcFacade {
	s := &bookingService{
		bookingRepo:    bookingRepo,
		postRepo:       postRepo,
		availability:   availability,
		capturer:       capturer,
		commissionRate: decimal.Zero,
		lockTTL:        defaultCaptureLockTTL,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// BookingHistoryURL is where the client lands after a confirmed payment.
func BookingHistoryURL(bookingID string) string {
	return "/booking-history?bookingId=" + bookingID
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error) {
	logger := s.GetLogger(ctx)

	date, err := domain.ParseDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	if date.Before(s.Today()) {
		return nil, fmt.Errorf("%w: date is in the past", apperrors.ErrValidation)
	}

	post, err := s.postRepo.FindGuidePostByID(ctx, req.GuidePostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guide post: %w", err)
	}
	if !post.IsActive {
		return nil, fmt.Errorf("%w: guide post is not active", apperrors.ErrNotFound)
	}
	if post.GuideID == userID {
		return nil, fmt.Errorf("%w: guides cannot book their own tours", apperrors.ErrValidation)
	}
	if req.AdultCount < 1 || req.AdultCount > post.MaxAdults {
		return nil, fmt.Errorf("%w: adultCount must be between 1 and %d", apperrors.ErrValidation, post.MaxAdults)
	}

	available, err := s.availability.IsDateAvailable(ctx, post.GuidePostID, date)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: %s is not available", apperrors.ErrConflict, req.Date)
	}

	booking := domain.Booking{
		BookingID:      uuid.NewString(),
		GuidePostID:    post.GuidePostID,
		UserID:         userID,
		Date:           date,
		AdultCount:     req.AdultCount,
		TotalAmount:    post.PricePerAdult.Mul(decimal.NewFromInt(int64(req.AdultCount))),
		Status:         domain.BookingPending,
		CreatedAt:      s.Now(),
		GuidePostTitle: post.Title,
		GuideID:        post.GuideID,
	}
	if err := s.bookingRepo.SaveBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("Booking created", slog.String("booking_id", booking.BookingID), slog.String("guide_post_id", post.GuidePostID), slog.String("date", req.Date))
	return &booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, userID string, req dto.CapturePaymentRequest) (*portssvc.CaptureOutcome, error) {
	logger := s.GetLogger(ctx).With(slog.String("booking_id", req.BookingID), slog.String("order_id", req.OrderID))

	booking, err := s.bookingRepo.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.UserID != userID {
		logger.Warn("Capture attempted by a user who does not own the booking")
		return nil, fmt.Errorf("%w: not the owner of this booking", apperrors.ErrForbidden)
	}

	switch booking.Status {
	case domain.BookingConfirmed:
		logger.Info("Booking already confirmed, skipping capture")
		return &portssvc.CaptureOutcome{
			Confirmed:        true,
			AlreadyConfirmed: true,
			ProviderStatus:   domain.CaptureStatusCompleted,
			Booking:          booking,
			RedirectURL:      BookingHistoryURL(booking.BookingID),
		}, nil
	case domain.BookingCancelled:
		return nil, fmt.Errorf("%w: booking is cancelled", apperrors.ErrValidation)
	}

	available, err := s.availability.IsDateAvailable(ctx, booking.GuidePostID, booking.Date)
	if err != nil {
		return nil, err
	}
	if !available {
		logger.Warn("Slot taken before capture")
		return nil, fmt.Errorf("%w: the selected date is no longer available", apperrors.ErrConflict)
	}

	if s.guard != nil {
		release, err := s.guard.Acquire(ctx, "capture:"+req.OrderID, s.lockTTL)
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				logger.Warn("Capture already in progress for order")
				return nil, fmt.Errorf("%w: payment capture already in progress", apperrors.ErrConflict)
			}
			return nil, fmt.Errorf("failed to acquire capture lock: %w", err)
		}
		defer release()
	}

	result, err := s.capturer.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		s.LogError(ctx, err, "Payment capture failed", slog.String("booking_id", booking.BookingID), slog.String("order_id", req.OrderID))
		return nil, fmt.Errorf("%w: payment capture failed: %v", apperrors.ErrUpstream, err)
	}

	if !result.Completed() {
		logger.Info("Payment not completed by provider", slog.String("provider_status", result.Status))
		s.track(userID, "payment_capture_failed", map[string]any{
			"booking_id":      booking.BookingID,
			"provider_status": result.Status,
		})
		return &portssvc.CaptureOutcome{
			Confirmed:      false,
			ProviderStatus: result.Status,
			Booking:        booking,
		}, nil
	}

	if !result.Amount.IsZero() && result.Amount.LessThan(booking.TotalAmount) {
		logger.Error("Captured amount is lower than the booking total",
			slog.String("captured", result.Amount.String()), slog.String("total", booking.TotalAmount.String()))
		s.requireRefund(ctx, booking, req.OrderID, result, "captured amount is lower than the booking total")
		return nil, fmt.Errorf("%w: captured amount does not cover the booking total", apperrors.ErrConflict)
	}

	credit := accounting.GuideShare(booking.TotalAmount, s.commissionRate)
	confirmed, err := s.bookingRepo.ConfirmBooking(ctx, domain.BookingConfirmation{
		BookingID:      booking.BookingID,
		OrderID:        req.OrderID,
		CaptureID:      result.CaptureID,
		GuideCredit:    credit,
		CreditNote:     fmt.Sprintf("Booking %s on %s", booking.BookingID, booking.Date.Format(domain.DateLayout)),
		ConfirmedAt:    s.Now(),
		ConfirmedByUID: userID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Payment captured but slot is held by another booking", slog.String("capture_id", result.CaptureID))
			s.requireRefund(ctx, booking, req.OrderID, result, "slot was taken before the booking could be confirmed")
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	logger.Info("Booking confirmed", slog.String("capture_id", result.CaptureID))
	s.afterConfirm(ctx, confirmed, credit, req.OrderID, result.CaptureID)

	return &portssvc.CaptureOutcome{
		Confirmed:      true,
		ProviderStatus: result.Status,
		Booking:        confirmed,
		RedirectURL:    BookingHistoryURL(confirmed.BookingID),
	}, nil
}

func (s *bookingService) afterConfirm(ctx context.Context, b *domain.Booking, credit decimal.Decimal, orderID, captureID string) {
	day := b.Date.Format(domain.DateLayout)
	if s.notifier != nil {
		notes := []domain.Notification{{
			UserID:  b.UserID,
			Type:    domain.NotifyBookingConfirmed,
			Title:   "Booking confirmed",
			Message: fmt.Sprintf("Your booking for %s on %s is confirmed.", b.GuidePostTitle, day),
			Link:    BookingHistoryURL(b.BookingID),
		}}
		if b.GuideID != "" {
			notes = append(notes, domain.Notification{
				UserID:  b.GuideID,
				Type:    domain.NotifyNewBooking,
				Title:   "New booking",
				Message: fmt.Sprintf("%s was booked for %s. %s was added to your balance.", b.GuidePostTitle, day, utils.FormatMoney(credit)),
				Link:    "/guide-dashboard",
			})
		}
		s.notifier.Notify(ctx, notes...)
	}

	s.publish(ctx, gateways.EventBookingConfirmed, BookingConfirmedEvent{
		BookingID:   b.BookingID,
		GuidePostID: b.GuidePostID,
		GuideID:     b.GuideID,
		UserID:      b.UserID,
		Date:        day,
		TotalAmount: b.TotalAmount,
		GuideCredit: credit,
		OrderID:     orderID,
		CaptureID:   captureID,
		ConfirmedAt: s.Now(),
	})

	s.track(b.UserID, "booking_confirmed", map[string]any{
		"booking_id":    b.BookingID,
		"guide_post_id": b.GuidePostID,
		"total_amount":  b.TotalAmount.String(),
	})
}

func (s *bookingService) CancelBooking(ctx context.Context, userID string, role domain.Role, bookingID string, reason string) (*domain.Booking, error) {
	logger := s.GetLogger(ctx).With(slog.String("booking_id", bookingID))

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	isAdmin := role == domain.RoleAdmin
	if !isAdmin && booking.UserID != userID {
		return nil, fmt.Errorf("%w: not the owner of this booking", apperrors.ErrForbidden)
	}
	switch booking.Status {
	case domain.BookingCancelled:
		return nil, fmt.Errorf("%w: booking is already cancelled", apperrors.ErrValidation)
	case domain.BookingConfirmed:
		if !isAdmin {
			return nil, fmt.Errorf("%w: confirmed bookings can only be cancelled by an admin", apperrors.ErrForbidden)
		}
	}
	wasConfirmed := booking.Status == domain.BookingConfirmed

	cancelled, err := s.bookingRepo.CancelBooking(ctx, domain.BookingCancellation{
		BookingID:   bookingID,
		CancelledAt: s.Now(),
		CancelledBy: userID,
		Reason:      reason,
	}, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	logger.Info("Booking cancelled", slog.Bool("was_confirmed", wasConfirmed))

	if s.notifier != nil {
		day := cancelled.Date.Format(domain.DateLayout)
		notes := []domain.Notification{{
			UserID:  cancelled.UserID,
			Type:    domain.NotifyBookingCancelled,
			Title:   "Booking cancelled",
			Message: fmt.Sprintf("Your booking for %s on %s was cancelled.", cancelled.GuidePostTitle, day),
			Link:    BookingHistoryURL(cancelled.BookingID),
		}}
		if wasConfirmed && cancelled.GuideID != "" {
			notes = append(notes, domain.Notification{
				UserID:  cancelled.GuideID,
				Type:    domain.NotifyBookingCancelled,
				Title:   "Booking cancelled",
				Message: fmt.Sprintf("The booking of %s on %s was cancelled and its income reversed.", cancelled.GuidePostTitle, day),
				Link:    "/guide-dashboard",
			})
		}
		s.notifier.Notify(ctx, notes...)
	}
	s.publish(ctx, gateways.EventBookingCancelled, BookingCancelledEvent{
		BookingID:    cancelled.BookingID,
		GuidePostID:  cancelled.GuidePostID,
		UserID:       cancelled.UserID,
		Date:         cancelled.Date.Format(domain.DateLayout),
		WasConfirmed: wasConfirmed,
		CancelledBy:  userID,
		Reason:       reason,
		CancelledAt:  s.Now(),
	})
	return cancelled, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if role != domain.RoleAdmin && booking.UserID != userID && booking.GuideID != userID {
		return nil, fmt.Errorf("%w: not allowed to view this booking", apperrors.ErrForbidden)
	}
	return booking, nil
}

func (s *bookingService) BookingHistory(ctx context.Context, userID string, params dto.BookingHistoryParams) ([]domain.Booking, string, error) {
	cursor, err := pagination.DecodeToken(params.NextToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	bookings, err := s.bookingRepo.FindBookingsByUser(ctx, userID, limit+1, cursor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get booking history: %w", err)
	}
	nextToken := ""
	if len(bookings) > limit {
		bookings = bookings[:limit]
		last := bookings[len(bookings)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.BookingID)
	}
	return bookings, nextToken, nil
}

// requireRefund records a capture that has to be refunded by hand.
func (s *bookingService) requireRefund(ctx context.Context, b *domain.Booking, orderID string, result *domain.CaptureResult, reason string) {
	s.publish(ctx, gateways.EventRefundRequired, RefundRequiredEvent{
		BookingID:      b.BookingID,
		UserID:         b.UserID,
		OrderID:        orderID,
		CaptureID:      result.CaptureID,
		CapturedAmount: result.Amount,
		TotalAmount:    b.TotalAmount,
		Reason:         reason,
		DetectedAt:     s.Now(),
	})
	s.track(b.UserID, "payment_refund_required", map[string]any{
		"booking_id": b.BookingID,
		"capture_id": result.CaptureID,
	})
}

func (s *bookingService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.LogError(ctx, err, "Failed to publish domain event", slog.String("routing_key", key))
	}
}

func (s *bookingService) track(userID, event string, props map[string]any) {
	if s.analytics == nil {
		return
	}
	s.analytics.Enqueue(userID, event, props)
}
