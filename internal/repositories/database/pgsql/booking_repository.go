package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	"github.com/borport/borport_backend/internal/models"
	"github.com/borport/borport_backend/internal/utils/mapping"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const constraintBookingOrder = "bookings_payment_order_id_key"

type PgxBookingRepository struct {
	BaseRepository
}

func newPgxBookingRepository(db DB) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

const bookingSelect = `
	SELECT b.booking_id, b.guide_post_id, b.user_id, b.booking_date, b.adult_count, b.total_amount, b.status,
		b.payment_order_id, b.payment_capture_id, b.created_at, b.confirmed_at, b.cancelled_at,
		p.title, p.guide_id
	FROM bookings b
	JOIN guide_posts p ON p.guide_post_id = b.guide_post_id`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.GuidePostID,
		&m.UserID,
		&m.Date,
		&m.AdultCount,
		&m.TotalAmount,
		&m.Status,
		&m.PaymentOrderID,
		&m.PaymentCaptureID,
		&m.CreatedAt,
		&m.ConfirmedAt,
		&m.CancelledAt,
		&m.GuidePostTitle,
		&m.GuideID,
	)
	return m, err
}

func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)
	query := `
		INSERT INTO bookings (booking_id, guide_post_id, user_id, booking_date, adult_count, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.BookingID, m.GuidePostID, m.UserID, m.Date, m.AdultCount, m.TotalAmount, m.Status, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return r.findBooking(ctx, r.Pool, bookingID)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxBookingRepository) findBooking(ctx context.Context, q queryRower, bookingID string) (*domain.Booking, error) {
	m, err := scanBooking(q.QueryRow(ctx, bookingSelect+` WHERE b.booking_id = $1;`, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	b := mapping.ToDomainBooking(m)
	return &b, nil
}

func (r *PgxBookingRepository) FindBookingsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Booking, error) {
	args := []any{userID}
	query := bookingSelect + ` WHERE b.user_id = $1`
	if cursor != nil {
		query += ` AND (b.created_at, b.booking_id) < ($2, $3)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY b.created_at DESC, b.booking_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, mapping.ToDomainBooking(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// lockBooking locks the booking row and returns its current state.
func (r *PgxBookingRepository) lockBooking(ctx context.Context, tx pgx.Tx, bookingID string) (*domain.Booking, error) {
	if _, err := tx.Exec(ctx, `SELECT 1 FROM bookings WHERE booking_id = $1 FOR UPDATE;`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return r.findBooking(ctx, tx, bookingID)
}

func (r *PgxBookingRepository) ConfirmBooking(ctx context.Context, c domain.BookingConfirmation) (*domain.Booking, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	booking, err := r.lockBooking(ctx, tx, c.BookingID)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case domain.BookingConfirmed:
		return booking, nil
	case domain.BookingCancelled:
		return nil, fmt.Errorf("%w: booking is cancelled", apperrors.ErrValidation)
	}

	// Take the slot. A missing row means the day is bookable, so open one before locking it.
	if _, err := tx.Exec(ctx, `
		INSERT INTO availability (guide_post_id, day, is_available, updated_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (guide_post_id, day) DO NOTHING;
	`, booking.GuidePostID, booking.Date); err != nil {
		return nil, fmt.Errorf("failed to open availability row: %w", err)
	}
	var holder *string
	var available bool
	err = tx.QueryRow(ctx, `
		SELECT is_available, booking_id FROM availability
		WHERE guide_post_id = $1 AND day = $2
		FOR UPDATE;
	`, booking.GuidePostID, booking.Date).Scan(&available, &holder)
	if err != nil {
		return nil, fmt.Errorf("failed to lock availability row: %w", err)
	}
	if holder != nil && *holder != booking.BookingID {
		return nil, fmt.Errorf("%w: %s is already booked", apperrors.ErrConflict, booking.Date.Format(domain.DateLayout))
	}
	if holder == nil && !available {
		return nil, fmt.Errorf("%w: %s is no longer available", apperrors.ErrConflict, booking.Date.Format(domain.DateLayout))
	}

	_, err = tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2, payment_order_id = $3, payment_capture_id = NULLIF($4, ''), confirmed_at = $5
		WHERE booking_id = $1;
	`, booking.BookingID, string(domain.BookingConfirmed), c.OrderID, c.CaptureID, c.ConfirmedAt)
	if err != nil {
		if isUniqueViolation(err, constraintBookingOrder) {
			return nil, fmt.Errorf("%w: order %s already confirmed another booking", apperrors.ErrConflict, c.OrderID)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE availability SET is_available = FALSE, booking_id = $3, updated_at = $4
		WHERE guide_post_id = $1 AND day = $2;
	`, booking.GuidePostID, booking.Date, booking.BookingID, c.ConfirmedAt); err != nil {
		return nil, fmt.Errorf("failed to take availability slot: %w", err)
	}

	if c.GuideCredit.IsPositive() {
		// A failed insert aborts the transaction, so look the entry up instead of relying on the unique key.
		_, err := ledgerAmount(ctx, tx, booking.BookingID, domain.TxnBookingIncome)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			_, err = appendLedgerEntry(ctx, tx, domain.GuideTransaction{
				GuideID:     booking.GuideID,
				Amount:      c.GuideCredit,
				Type:        domain.TxnBookingIncome,
				Description: c.CreditNote,
				ReferenceID: booking.BookingID,
				CreatedAt:   c.ConfirmedAt,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to credit guide: %w", err)
			}
		case err != nil:
			return nil, err
		}
	}

	confirmed, err := r.findBooking(ctx, tx, booking.BookingID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (r *PgxBookingRepository) CancelBooking(ctx context.Context, c domain.BookingCancellation, allowConfirmed bool) (*domain.Booking, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	booking, err := r.lockBooking(ctx, tx, c.BookingID)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case domain.BookingCancelled:
		return nil, fmt.Errorf("%w: booking is already cancelled", apperrors.ErrValidation)
	case domain.BookingConfirmed:
		if !allowConfirmed {
			return nil, fmt.Errorf("%w: confirmed bookings can only be cancelled by an admin", apperrors.ErrForbidden)
		}
		if err := r.releaseConfirmed(ctx, tx, booking, c); err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE bookings SET status = $2, cancelled_at = $3, cancelled_by = $4, cancel_reason = NULLIF($5, '')
		WHERE booking_id = $1;
	`, booking.BookingID, string(domain.BookingCancelled), c.CancelledAt, c.CancelledBy, c.Reason)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	cancelled, err := r.findBooking(ctx, tx, booking.BookingID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return cancelled, nil
}

// releaseConfirmed frees the slot of a confirmed booking and reverses the guide's income for it.
func (r *PgxBookingRepository) releaseConfirmed(ctx context.Context, tx pgx.Tx, booking *domain.Booking, c domain.BookingCancellation) error {
	if _, err := tx.Exec(ctx, `
		UPDATE availability SET is_available = TRUE, booking_id = NULL, updated_at = $3
		WHERE guide_post_id = $1 AND day = $2 AND booking_id = $4;
	`, booking.GuidePostID, booking.Date, c.CancelledAt, booking.BookingID); err != nil {
		return fmt.Errorf("failed to release availability slot: %w", err)
	}

	income, err := ledgerAmount(ctx, tx, booking.BookingID, domain.TxnBookingIncome)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := ledgerAmount(ctx, tx, booking.BookingID, domain.TxnBookingReversal); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	_, err = appendLedgerEntry(ctx, tx, domain.GuideTransaction{
		GuideID:     booking.GuideID,
		Amount:      income.Neg(),
		Type:        domain.TxnBookingReversal,
		Description: fmt.Sprintf("Reversal of booking %s", booking.BookingID),
		ReferenceID: booking.BookingID,
		CreatedAt:   c.CancelledAt,
	})
	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return fmt.Errorf("%w: guide balance no longer covers the reversal", apperrors.ErrConflict)
	case err != nil:
		return fmt.Errorf("failed to reverse guide income: %w", err)
	}
	return nil
}
