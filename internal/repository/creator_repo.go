package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreatorRepository handles all database operations for creator and brand
// profiles, including the discovery search queries.
type CreatorRepository struct {
	db *sqlx.DB
}

// NewCreatorRepository creates a new CreatorRepository.
func NewCreatorRepository(db *sqlx.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

// ── Creator profiles ─────────────────────────────────────────────────────────

// CreateCreator inserts a new creator profile row.
func (r *CreatorRepository) CreateCreator(ctx context.Context, c *domain.CreatorProfile) error {
	query := `
		INSERT INTO creators
			(id, user_id, display_name, bio, primary_genre, region, avatar_url,
			 total_videos, total_views, subscribers, avg_views_per_video, engagement_rate,
			 subscriber_growth_rate, posting_frequency, top_performing_genre,
			 performance_trend, audience_demographics, last_analytics_update,
			 created_at, updated_at)
		VALUES
			(:id, :user_id, :display_name, :bio, :primary_genre, :region, :avatar_url,
			 :total_videos, :total_views, :subscribers, :avg_views_per_video, :engagement_rate,
			 :subscriber_growth_rate, :posting_frequency, :top_performing_genre,
			 :performance_trend, :audience_demographics, :last_analytics_update,
			 :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isPgUniqueViolation(err, "creators_user_id_key") {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("creator_repo.CreateCreator: %w", err)
	}
	return nil
}

// GetCreatorByID fetches a creator profile by its primary key.
func (r *CreatorRepository) GetCreatorByID(ctx context.Context, id uuid.UUID) (*domain.CreatorProfile, error) {
	var c domain.CreatorProfile
	err := r.db.GetContext(ctx, &c, `SELECT * FROM creators WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("creator_repo.GetCreatorByID: %w", err)
	}
	return &c, nil
}

// GetCreatorByUserID fetches the creator profile owned by a user.
func (r *CreatorRepository) GetCreatorByUserID(ctx context.Context, userID uuid.UUID) (*domain.CreatorProfile, error) {
	var c domain.CreatorProfile
	err := r.db.GetContext(ctx, &c, `SELECT * FROM creators WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("creator_repo.GetCreatorByUserID: %w", err)
	}
	return &c, nil
}

// UpdateCreatorProfile applies the non-nil fields of upd to a creator profile.
func (r *CreatorRepository) UpdateCreatorProfile(ctx context.Context, userID uuid.UUID, upd domain.CreatorUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE creators
		SET display_name  = COALESCE($1, display_name),
		    bio           = COALESCE($2, bio),
		    primary_genre = COALESCE($3, primary_genre),
		    region        = COALESCE($4, region),
		    avatar_url    = COALESCE($5, avatar_url),
		    updated_at    = now()
		WHERE user_id = $6`,
		upd.DisplayName, upd.Bio, upd.PrimaryGenre, upd.Region, upd.AvatarURL, userID)
	if err != nil {
		return fmt.Errorf("creator_repo.UpdateCreatorProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

// UpdateCreatorAnalytics overwrites the synthetic analytics block of a profile.
func (r *CreatorRepository) UpdateCreatorAnalytics(ctx context.Context, c *domain.CreatorProfile) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE creators
		SET total_videos           = :total_videos,
		    total_views            = :total_views,
		    subscribers            = :subscribers,
		    avg_views_per_video    = :avg_views_per_video,
		    engagement_rate        = :engagement_rate,
		    subscriber_growth_rate = :subscriber_growth_rate,
		    posting_frequency      = :posting_frequency,
		    top_performing_genre   = :top_performing_genre,
		    performance_trend      = :performance_trend,
		    audience_demographics  = :audience_demographics,
		    last_analytics_update  = :last_analytics_update,
		    updated_at             = now()
		WHERE id = :id`, c)
	if err != nil {
		return fmt.Errorf("creator_repo.UpdateCreatorAnalytics: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

// SearchCreators runs the discovery query: optional genre/region/min-subs
// filters plus a case-insensitive text search over name, bio and genre.
func (r *CreatorRepository) SearchCreators(ctx context.Context, q domain.CreatorSearch) ([]*domain.CreatorProfile, error) {
	query := `SELECT * FROM creators WHERE 1=1`
	args := []any{}
	n := 0

	add := func(clause string, val any) {
		n++
		query += fmt.Sprintf(" AND "+clause, n)
		args = append(args, val)
	}

	if q.Genre != "" {
		add("primary_genre ILIKE $%d", "%"+q.Genre+"%")
	}
	if q.Region != "" {
		add("region ILIKE $%d", "%"+q.Region+"%")
	}
	if q.MinSubs > 0 {
		add("subscribers >= $%d", q.MinSubs)
	}
	if q.Search != "" {
		n++
		query += fmt.Sprintf(
			" AND (display_name ILIKE $%d OR bio ILIKE $%d OR primary_genre ILIKE $%d)", n, n, n)
		args = append(args, "%"+q.Search+"%")
	}

	query += fmt.Sprintf(" ORDER BY subscribers DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, q.Limit, q.Offset)

	var creators []*domain.CreatorProfile
	if err := r.db.SelectContext(ctx, &creators, query, args...); err != nil {
		return nil, fmt.Errorf("creator_repo.SearchCreators: %w", err)
	}
	return creators, nil
}

// GetStaleAnalytics returns up to limit creator profiles whose analytics are
// missing or older than the cutoff. Used by the background refresh loop.
func (r *CreatorRepository) GetStaleAnalytics(ctx context.Context, cutoff time.Time, limit int) ([]*domain.CreatorProfile, error) {
	var creators []*domain.CreatorProfile
	err := r.db.SelectContext(ctx, &creators, `
		SELECT * FROM creators
		WHERE last_analytics_update IS NULL OR last_analytics_update < $1
		ORDER BY last_analytics_update ASC NULLS FIRST
		LIMIT $2`,
		cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("creator_repo.GetStaleAnalytics: %w", err)
	}
	return creators, nil
}

// ── Brand profiles ───────────────────────────────────────────────────────────

// CreateBrand inserts a new brand profile row.
func (r *CreatorRepository) CreateBrand(ctx context.Context, b *domain.BrandProfile) error {
	query := `
		INSERT INTO brands
			(id, user_id, brand_name, industry, region, budget_band, created_at, updated_at)
		VALUES
			(:id, :user_id, :brand_name, :industry, :region, :budget_band, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		if isPgUniqueViolation(err, "brands_user_id_key") {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("creator_repo.CreateBrand: %w", err)
	}
	return nil
}

// GetBrandByUserID fetches the brand profile owned by a user.
func (r *CreatorRepository) GetBrandByUserID(ctx context.Context, userID uuid.UUID) (*domain.BrandProfile, error) {
	var b domain.BrandProfile
	err := r.db.GetContext(ctx, &b, `SELECT * FROM brands WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, fmt.Errorf("creator_repo.GetBrandByUserID: %w", err)
	}
	return &b, nil
}

// UpdateBrandProfile applies the non-nil fields of upd to a brand profile.
func (r *CreatorRepository) UpdateBrandProfile(ctx context.Context, userID uuid.UUID, upd domain.BrandUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE brands
		SET brand_name  = COALESCE($1, brand_name),
		    industry    = COALESCE($2, industry),
		    region      = COALESCE($3, region),
		    budget_band = COALESCE($4, budget_band),
		    updated_at  = now()
		WHERE user_id = $5`,
		upd.BrandName, upd.Industry, upd.Region, upd.BudgetBand, userID)
	if err != nil {
		return fmt.Errorf("creator_repo.UpdateBrandProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBrandNotFound
	}
	return nil
}

// ListBrands returns all brand profiles, newest first.
func (r *CreatorRepository) ListBrands(ctx context.Context, limit, offset int) ([]*domain.BrandProfile, error) {
	var brands []*domain.BrandProfile
	err := r.db.SelectContext(ctx, &brands,
		`SELECT * FROM brands ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("creator_repo.ListBrands: %w", err)
	}
	return brands, nil
}
