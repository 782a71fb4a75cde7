package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	"github.com/borport/borport_backend/internal/models"
	"github.com/borport/borport_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxGuidePostRepository struct {
	BaseRepository
}

func newPgxGuidePostRepository(db DB) portsrepo.GuidePostRepositoryFacade {
	return &PgxGuidePostRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.GuidePostRepositoryFacade = (*PgxGuidePostRepository)(nil)

const guidePostColumns = `guide_post_id, guide_id, title, description, location, price_per_adult, max_adults,
	image_urls, is_active, like_count, created_at, created_by, last_updated_at, last_updated_by`

func scanGuidePost(row pgx.Row) (models.GuidePost, error) {
	var m models.GuidePost
	err := row.Scan(
		&m.GuidePostID,
		&m.GuideID,
		&m.Title,
		&m.Description,
		&m.Location,
		&m.PricePerAdult,
		&m.MaxAdults,
		&m.ImageURLs,
		&m.IsActive,
		&m.LikeCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGuidePostRepository) SaveGuidePost(ctx context.Context, post domain.GuidePost) error {
	m := mapping.ToModelGuidePost(post)
	query := `
		INSERT INTO guide_posts (guide_post_id, guide_id, title, description, location, price_per_adult,
			max_adults, image_urls, is_active, like_count, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GuidePostID, m.GuideID, m.Title, m.Description, m.Location, m.PricePerAdult,
		m.MaxAdults, m.ImageURLs, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save guide post: %w", err)
	}
	return nil
}

func (r *PgxGuidePostRepository) UpdateGuidePost(ctx context.Context, post domain.GuidePost) error {
	m := mapping.ToModelGuidePost(post)
	query := `
		UPDATE guide_posts
		SET title = $2, description = $3, location = $4, price_per_adult = $5, max_adults = $6,
			image_urls = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE guide_post_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GuidePostID, m.Title, m.Description, m.Location, m.PricePerAdult, m.MaxAdults,
		m.ImageURLs, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update guide post %s: %w", post.GuidePostID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGuidePostRepository) FindGuidePostByID(ctx context.Context, guidePostID string) (*domain.GuidePost, error) {
	query := `SELECT ` + guidePostColumns + ` FROM guide_posts WHERE guide_post_id = $1;`
	m, err := scanGuidePost(r.Pool.QueryRow(ctx, query, guidePostID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find guide post %s: %w", guidePostID, err)
	}
	post := mapping.ToDomainGuidePost(m)
	return &post, nil
}

func (r *PgxGuidePostRepository) FindGuidePosts(ctx context.Context, filter domain.GuidePostFilter) ([]domain.GuidePost, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.GuideID != "" {
		add("guide_id = $%d", filter.GuideID)
	}
	if filter.Active != nil {
		add("is_active = $%d", *filter.Active)
	}
	if filter.Location != "" {
		add("location ILIKE '%%' || $%d || '%%'", filter.Location)
	}
	if filter.Query != "" {
		args = append(args, filter.Query)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}

	query := `SELECT ` + guidePostColumns + ` FROM guide_posts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, guide_post_id DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guide posts: %w", err)
	}
	defer rows.Close()

	var ms []models.GuidePost
	for rows.Next() {
		m, err := scanGuidePost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guide post row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guide post rows: %w", err)
	}
	return mapping.ToDomainGuidePostSlice(ms), nil
}

// AddLike inserts the like and bumps the cached count in one transaction.
func (r *PgxGuidePostRepository) AddLike(ctx context.Context, guidePostID, userID string) (int, error) {
	return r.changeLike(ctx, guidePostID, userID, true)
}

// RemoveLike deletes the like and decrements the cached count in one transaction.
func (r *PgxGuidePostRepository) RemoveLike(ctx context.Context, guidePostID, userID string) (int, error) {
	return r.changeLike(ctx, guidePostID, userID, false)
}

func (r *PgxGuidePostRepository) changeLike(ctx context.Context, guidePostID, userID string, like bool) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var count int
	err = tx.QueryRow(ctx, `SELECT like_count FROM guide_posts WHERE guide_post_id = $1 FOR UPDATE;`, guidePostID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock guide post %s: %w", guidePostID, err)
	}

	var stmt string
	delta := 1
	if like {
		stmt = `INSERT INTO post_likes (guide_post_id, user_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING;`
	} else {
		stmt = `DELETE FROM post_likes WHERE guide_post_id = $1 AND user_id = $2;`
		delta = -1
	}
	tag, err := tx.Exec(ctx, stmt, guidePostID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to change like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already in the requested state.
		return count, nil
	}

	err = tx.QueryRow(ctx,
		`UPDATE guide_posts SET like_count = GREATEST(like_count + $2, 0) WHERE guide_post_id = $1 RETURNING like_count;`,
		guidePostID, delta,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to update like count: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgxGuidePostRepository) HasLiked(ctx context.Context, guidePostID, userID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE guide_post_id = $1 AND user_id = $2);`,
		guidePostID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}
