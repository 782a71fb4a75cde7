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

type PgxAvailabilityRepository struct {
	BaseRepository
}

func newPgxAvailabilityRepository(db DB) portsrepo.AvailabilityRepositoryFacade {
	return &PgxAvailabilityRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AvailabilityRepositoryFacade = (*PgxAvailabilityRepository)(nil)

func scanAvailability(row pgx.Row) (domain.Availability, error) {
	var a domain.Availability
	err := row.Scan(&a.GuidePostID, &a.Date, &a.IsAvailable, &a.BookingID, &a.UpdatedAt)
	a.Date = domain.TruncateToDay(a.Date)
	return a, err
}

func (r *PgxAvailabilityRepository) FindAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error) {
	query := `
		SELECT guide_post_id, day, is_available, booking_id, updated_at
		FROM availability
		WHERE guide_post_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, query, guidePostID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	out := []domain.Availability{}
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PgxAvailabilityRepository) FindAvailabilityForDate(ctx context.Context, guidePostID string, date time.Time) (*domain.Availability, error) {
	query := `
		SELECT guide_post_id, day, is_available, booking_id, updated_at
		FROM availability
		WHERE guide_post_id = $1 AND day = $2;
	`
	a, err := scanAvailability(r.Pool.QueryRow(ctx, query, guidePostID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}
	return &a, nil
}

func (r *PgxAvailabilityRepository) SetAvailability(ctx context.Context, guidePostID string, dates []time.Time, isAvailable bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the held days so a concurrent confirm cannot slip in between the check and the upsert.
	rows, err := tx.Query(ctx, `
		SELECT day FROM availability
		WHERE guide_post_id = $1 AND day = ANY($2) AND booking_id IS NOT NULL
		FOR UPDATE;
	`, guidePostID, dates)
	if err != nil {
		return fmt.Errorf("failed to lock availability rows: %w", err)
	}
	var held []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan held day: %w", err)
		}
		held = append(held, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating held days: %w", err)
	}
	if isAvailable && len(held) > 0 {
		return fmt.Errorf("%w: %s is held by a confirmed booking", apperrors.ErrConflict, held[0].Format(domain.DateLayout))
	}

	batch := &pgx.Batch{}
	for _, d := range dates {
		batch.Queue(`
			INSERT INTO availability (guide_post_id, day, is_available, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (guide_post_id, day) DO UPDATE
			SET is_available = EXCLUDED.is_available, updated_at = EXCLUDED.updated_at
			WHERE availability.booking_id IS NULL;
		`, guidePostID, d, isAvailable)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return r.Commit(ctx, tx)
}
