package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// InsightJobStatus represents the lifecycle of an AI analysis job.
type InsightJobStatus string

const (
	InsightStatusPending    InsightJobStatus = "PENDING"
	InsightStatusProcessing InsightJobStatus = "PROCESSING"
	InsightStatusCompleted  InsightJobStatus = "COMPLETED"
	InsightStatusFailed     InsightJobStatus = "FAILED"
)

// InsightJobType identifies the kind of analysis requested.
type InsightJobType string

const (
	InsightTypeCommentAnalysis InsightJobType = "COMMENT_ANALYSIS"
)

// ──────────────────────────────────────────────────────────────────────────────
// InsightJob
// ──────────────────────────────────────────────────────────────────────────────

// InsightJob is an asynchronous AI analysis request. Jobs are created PENDING
// and picked up by the background insight worker, which fills in Result and
// flips the status to COMPLETED.
type InsightJob struct {
	ID          uuid.UUID        `json:"id"           db:"id"`
	UserID      uuid.UUID        `json:"user_id"      db:"user_id"`
	JobType     InsightJobType   `json:"job_type"     db:"job_type"`
	Status      InsightJobStatus `json:"status"       db:"status"`
	Query       string           `json:"query"        db:"query"`
	VideoIDs    pq.StringArray   `json:"video_ids"    db:"video_ids"`
	Result      JSONMap          `json:"result"       db:"result"`
	CreatedAt   time.Time        `json:"created_at"   db:"created_at"`
	CompletedAt *time.Time       `json:"completed_at" db:"completed_at"`
}

// CommentAnalysisRequest carries the inputs for a comment-analysis job.
type CommentAnalysisRequest struct {
	Query    string   `json:"query"     binding:"required"`
	VideoIDs []string `json:"video_ids"`
}
