package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CompatibilityRepository handles all database operations for compatibility
// scores.
type CompatibilityRepository struct {
	db *sqlx.DB
}

// NewCompatibilityRepository creates a new CompatibilityRepository.
func NewCompatibilityRepository(db *sqlx.DB) *CompatibilityRepository {
	return &CompatibilityRepository{db: db}
}

// Create inserts a new compatibility score row.
func (r *CompatibilityRepository) Create(ctx context.Context, s *domain.CompatibilityScore) error {
	query := `
		INSERT INTO compatibility_scores
			(id, creator_id, target_id, target_type, score, breakdown, calculated_at)
		VALUES
			(:id, :creator_id, :target_id, :target_type, :score, :breakdown, :calculated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("compatibility_repo.Create: %w", err)
	}
	return nil
}

// GetLatestByCreator returns the creator's most recently calculated score.
func (r *CompatibilityRepository) GetLatestByCreator(ctx context.Context, creatorID uuid.UUID) (*domain.CompatibilityScore, error) {
	var s domain.CompatibilityScore
	err := r.db.GetContext(ctx, &s,
		`SELECT * FROM compatibility_scores WHERE creator_id = $1 ORDER BY calculated_at DESC LIMIT 1`,
		creatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompatibilityNotFound
		}
		return nil, fmt.Errorf("compatibility_repo.GetLatestByCreator: %w", err)
	}
	return &s, nil
}
