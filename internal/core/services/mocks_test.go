package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string) error {
	args := m.Called(ctx, userID, provider, providerUserID)
	return args.Error(0)
}

// --- Mock GuidePostRepository ---
type MockGuidePostRepository struct {
	mock.Mock
}

func (m *MockGuidePostRepository) FindGuidePostByID(ctx context.Context, guidePostID string) (*domain.GuidePost, error) {
	args := m.Called(ctx, guidePostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuidePost), args.Error(1)
}

func (m *MockGuidePostRepository) FindGuidePosts(ctx context.Context, filter domain.GuidePostFilter) ([]domain.GuidePost, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuidePost), args.Error(1)
}

func (m *MockGuidePostRepository) SaveGuidePost(ctx context.Context, post domain.GuidePost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockGuidePostRepository) UpdateGuidePost(ctx context.Context, post domain.GuidePost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockGuidePostRepository) AddLike(ctx context.Context, guidePostID, userID string) (int, error) {
	args := m.Called(ctx, guidePostID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockGuidePostRepository) RemoveLike(ctx context.Context, guidePostID, userID string) (int, error) {
	args := m.Called(ctx, guidePostID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockGuidePostRepository) HasLiked(ctx context.Context, guidePostID, userID string) (bool, error) {
	args := m.Called(ctx, guidePostID, userID)
	return args.Bool(0), args.Error(1)
}

// --- Mock AvailabilityRepository ---
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) FindAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error) {
	args := m.Called(ctx, guidePostID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) FindAvailabilityForDate(ctx context.Context, guidePostID string, date time.Time) (*domain.Availability, error) {
	args := m.Called(ctx, guidePostID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) SetAvailability(ctx context.Context, guidePostID string, dates []time.Time, isAvailable bool) error {
	return m.Called(ctx, guidePostID, dates, isAvailable).Error(0)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) ConfirmBooking(ctx context.Context, confirmation domain.BookingConfirmation) (*domain.Booking, error) {
	args := m.Called(ctx, confirmation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelBooking(ctx context.Context, cancellation domain.BookingCancellation, allowConfirmed bool) (*domain.Booking, error) {
	args := m.Called(ctx, cancellation, allowConfirmed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// --- Mock FinanceRepository ---
type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) FindFinanceByGuideID(ctx context.Context, guideID string) (*domain.GuideFinance, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideFinance), args.Error(1)
}

func (m *MockFinanceRepository) FindTransactions(ctx context.Context, guideID string, limit int, cursor *pagination.Cursor) ([]domain.GuideTransaction, error) {
	args := m.Called(ctx, guideID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideTransaction), args.Error(1)
}

func (m *MockFinanceRepository) RecordTransaction(ctx context.Context, txn domain.GuideTransaction) (*domain.GuideTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideTransaction), args.Error(1)
}

func (m *MockFinanceRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceRepository) FindWithdrawalsByGuide(ctx context.Context, guideID string, limit int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, guideID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceRepository) FindWithdrawalsByStatus(ctx context.Context, statuses []domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, statuses, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceRepository) CreateWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) (*domain.Withdrawal, error) {
	args := m.Called(ctx, withdrawal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceRepository) ProcessWithdrawal(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, processedBy string, processedAt time.Time) (*domain.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID, status, note, processedBy, processedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *MockNotificationRepository) FindNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int, cursor *pagination.Cursor) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID string, notificationIDs []string) (int64, error) {
	args := m.Called(ctx, userID, notificationIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ApplicationRepository ---
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, app domain.GuideApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.GuideApplication, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindApplicationsByUser(ctx context.Context, userID string) ([]domain.GuideApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindApplications(ctx context.Context, status *domain.ApplicationStatus, limit, offset int) ([]domain.GuideApplication, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideApplication), args.Error(1)
}

func (m *MockApplicationRepository) ReviewApplication(ctx context.Context, applicationID string, status domain.ApplicationStatus, reviewerID string, reviewedAt time.Time) (*domain.GuideApplication, bool, error) {
	args := m.Called(ctx, applicationID, status, reviewerID, reviewedAt)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.GuideApplication), args.Bool(1), args.Error(2)
}

// --- Mock ReviewRepository ---
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) SaveReview(ctx context.Context, review domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) FindReviewsByPost(ctx context.Context, guidePostID string, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, guidePostID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDashboardCounts(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyRevenue(ctx context.Context, from time.Time) ([]domain.RevenuePoint, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenuePoint), args.Error(1)
}

// --- Mock AvailabilitySvc ---
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error) {
	args := m.Called(ctx, guidePostID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Availability), args.Error(1)
}

func (m *MockAvailabilityService) IsDateAvailable(ctx context.Context, guidePostID string, date time.Time) (bool, error) {
	args := m.Called(ctx, guidePostID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityService) SetAvailability(ctx context.Context, guideID, guidePostID string, dates []time.Time, isAvailable bool) error {
	return m.Called(ctx, guideID, guidePostID, dates, isAvailable).Error(0)
}

// --- Mock UserSvc ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Gateway mocks ---
type MockCapturer struct {
	mock.Mock
}

func (m *MockCapturer) CaptureOrder(ctx context.Context, orderID string) (*domain.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaptureResult), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

// fakeGuard is an in-memory capture guard that records how often it was released.
type fakeGuard struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error
	released int
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{held: make(map[string]bool)}
}

func (g *fakeGuard) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.held[key] = true
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.held, key)
		g.released++
	}, nil
}

type publishedEvent struct {
	key     string
	payload any
}

// fakePublisher collects published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, payload: payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.key)
	}
	return out
}

// fakeNotifier collects notifications instead of storing them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, notifications ...domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notifications...)
}

func (n *fakeNotifier) CreateNotification(context.Context, string, domain.Role, dto.CreateNotificationRequest) (*domain.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) ListNotifications(context.Context, string, dto.ListNotificationsParams) ([]domain.Notification, int64, string, error) {
	return nil, 0, "", nil
}

func (n *fakeNotifier) MarkRead(context.Context, string, dto.MarkNotificationsReadRequest) (int64, error) {
	return 0, nil
}

// fakeAnalytics collects analytics event names.
type fakeAnalytics struct {
	mu     sync.Mutex
	events []string
}

func (a *fakeAnalytics) Enqueue(_ string, event string, _ map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}
