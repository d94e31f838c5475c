package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// JSONMap — JSONB column helper
// ──────────────────────────────────────────────────────────────────────────────

// JSONMap stores arbitrary JSON objects (audience demographics, insight
// results) in a PostgreSQL jsonb column via sqlx.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("JSONMap.Scan: unsupported source type %T", src)
	}
	return json.Unmarshal(b, m)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatorProfile
// ──────────────────────────────────────────────────────────────────────────────

// PerformanceTrend describes the direction of a creator's recent analytics.
type PerformanceTrend string

const (
	TrendGrowing   PerformanceTrend = "growing"
	TrendStable    PerformanceTrend = "stable"
	TrendDeclining PerformanceTrend = "declining"
)

// CreatorProfile is the public identity of a creator plus channel analytics.
// The analytics block is synthetic: generated on first read and periodically
// refreshed, carrying no invariants beyond plausibility.
type CreatorProfile struct {
	ID           uuid.UUID `json:"id"            db:"id"`
	UserID       uuid.UUID `json:"user_id"       db:"user_id"`
	DisplayName  string    `json:"display_name"  db:"display_name"`
	Bio          string    `json:"bio"           db:"bio"`
	PrimaryGenre string    `json:"primary_genre" db:"primary_genre"`
	Region       string    `json:"region"        db:"region"`
	AvatarURL    string    `json:"avatar_url"    db:"avatar_url"`

	// Analytics fields
	TotalVideos          int              `json:"total_videos"           db:"total_videos"`
	TotalViews           int64            `json:"total_views"            db:"total_views"`
	Subscribers          int64            `json:"subscribers"            db:"subscribers"`
	AvgViewsPerVideo     float64          `json:"avg_views_per_video"    db:"avg_views_per_video"`
	EngagementRate       float64          `json:"engagement_rate"        db:"engagement_rate"`
	SubscriberGrowthRate float64          `json:"subscriber_growth_rate" db:"subscriber_growth_rate"`
	PostingFrequency     float64          `json:"posting_frequency"      db:"posting_frequency"`
	TopPerformingGenre   string           `json:"top_performing_genre"   db:"top_performing_genre"`
	PerformanceTrend     PerformanceTrend `json:"performance_trend"      db:"performance_trend"`
	AudienceDemographics JSONMap          `json:"audience_demographics"  db:"audience_demographics"`
	LastAnalyticsUpdate  *time.Time       `json:"last_analytics_update"  db:"last_analytics_update"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasAnalytics reports whether the synthetic analytics block has been
// generated for this profile yet.
func (c *CreatorProfile) HasAnalytics() bool {
	return c.TotalVideos > 0
}

// CreatorUpdate carries the mutable profile fields. Nil means "leave as is".
type CreatorUpdate struct {
	DisplayName  *string `json:"display_name"`
	Bio          *string `json:"bio"`
	PrimaryGenre *string `json:"primary_genre"`
	Region       *string `json:"region"`
	AvatarURL    *string `json:"avatar_url"`
}

// ──────────────────────────────────────────────────────────────────────────────
// BrandProfile
// ──────────────────────────────────────────────────────────────────────────────

// BrandProfile is the public identity of a brand.
type BrandProfile struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	UserID     uuid.UUID `json:"user_id"     db:"user_id"`
	BrandName  string    `json:"brand_name"  db:"brand_name"`
	Industry   string    `json:"industry"    db:"industry"`
	Region     string    `json:"region"      db:"region"`
	BudgetBand string    `json:"budget_band" db:"budget_band"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// BrandUpdate carries the mutable brand fields. Nil means "leave as is".
type BrandUpdate struct {
	BrandName  *string `json:"brand_name"`
	Industry   *string `json:"industry"`
	Region     *string `json:"region"`
	BudgetBand *string `json:"budget_band"`
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatorSearch — discovery filter value object
// ──────────────────────────────────────────────────────────────────────────────

// CreatorSearch carries the discovery filters for creator search.
type CreatorSearch struct {
	Genre   string
	Region  string
	Search  string
	MinSubs int64
	Limit   int
	Offset  int
}
