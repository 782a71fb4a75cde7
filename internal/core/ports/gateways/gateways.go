// Package gateways declares the outbound collaborators the services depend on.
package gateways

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// PaymentCapturer finalizes a payment order with the payment provider.
type PaymentCapturer interface {
	// CaptureOrder captures orderID and reports the provider's view of it.
	// Transport and provider failures are returned as errors; a capture the provider
	// declined is a result whose Status is not COMPLETED.
	CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error)
}

// CaptureGuard keeps two captures of the same order from running at once.
type CaptureGuard interface {
	// Acquire takes the lock for key. It returns apperrors.ErrConflict while another holder has it.
	// The returned release func is safe to call once the work is done.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// EventPublisher emits domain events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Analytics records product analytics events.
type Analytics interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// GoogleTokenVerifier validates Google ID tokens.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
}

// Domain event routing keys.
const (
	EventBookingConfirmed     = "booking.confirmed"
	EventBookingCancelled     = "booking.cancelled"
	EventRefundRequired       = "payment.refund_required"
	EventWithdrawalRequested  = "withdrawal.requested"
	EventWithdrawalProcessed  = "withdrawal.processed"
	EventApplicationReviewed  = "application.reviewed"
	EventGuideApplicationSent = "application.submitted"
)
