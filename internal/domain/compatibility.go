package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompatibilityTargetType identifies what a creator is being matched against.
type CompatibilityTargetType string

const (
	CompatibilityTargetCreator CompatibilityTargetType = "CREATOR"
	CompatibilityTargetBrand   CompatibilityTargetType = "BRAND"
)

// CompatibilityScore is a mock creator↔target affinity rating. Scores are
// synthesized on demand and persisted; a creator's most recent score is what
// reads return.
type CompatibilityScore struct {
	ID           uuid.UUID               `json:"id"            db:"id"`
	CreatorID    uuid.UUID               `json:"creator_id"    db:"creator_id"`
	TargetID     uuid.UUID               `json:"target_id"     db:"target_id"`
	TargetType   CompatibilityTargetType `json:"target_type"   db:"target_type"`
	Score        float64                 `json:"score"         db:"score"`
	Breakdown    JSONMap                 `json:"breakdown"     db:"breakdown"`
	CalculatedAt time.Time               `json:"calculated_at" db:"calculated_at"`
}

// RecalculateCompatibilityRequest carries the inputs for a score calculation.
type RecalculateCompatibilityRequest struct {
	TargetID   uuid.UUID `json:"target_id"   binding:"required"`
	TargetType string    `json:"target_type" binding:"required"`
}
