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

// InsightRepository handles all database operations for AI insight jobs.
type InsightRepository struct {
	db *sqlx.DB
}

// NewInsightRepository creates a new InsightRepository.
func NewInsightRepository(db *sqlx.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

// Create inserts a new insight job row.
func (r *InsightRepository) Create(ctx context.Context, j *domain.InsightJob) error {
	query := `
		INSERT INTO insight_jobs
			(id, user_id, job_type, status, query, video_ids, result, created_at)
		VALUES
			(:id, :user_id, :job_type, :status, :query, :video_ids, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, j); err != nil {
		return fmt.Errorf("insight_repo.Create: %w", err)
	}
	return nil
}

// GetByID fetches an insight job by its primary key.
func (r *InsightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InsightJob, error) {
	var j domain.InsightJob
	err := r.db.GetContext(ctx, &j, `SELECT * FROM insight_jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInsightJobNotFound
		}
		return nil, fmt.Errorf("insight_repo.GetByID: %w", err)
	}
	return &j, nil
}

// GetByUser returns a user's insight jobs, most recent first.
func (r *InsightRepository) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.InsightJob, error) {
	var jobs []*domain.InsightJob
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM insight_jobs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("insight_repo.GetByUser: %w", err)
	}
	return jobs, nil
}

// ClaimPending atomically moves up to limit PENDING jobs to PROCESSING and
// returns them. The guarded UPDATE means concurrent worker ticks never pick
// up the same job twice.
func (r *InsightRepository) ClaimPending(ctx context.Context, limit int) ([]*domain.InsightJob, error) {
	var jobs []*domain.InsightJob
	err := r.db.SelectContext(ctx, &jobs, `
		UPDATE insight_jobs
		SET status = $1
		WHERE id IN (
			SELECT id FROM insight_jobs
			WHERE status = $2
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		string(domain.InsightStatusProcessing), string(domain.InsightStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("insight_repo.ClaimPending: %w", err)
	}
	return jobs, nil
}

// Complete stores a job's result and flips it to COMPLETED.
func (r *InsightRepository) Complete(ctx context.Context, jobID uuid.UUID, result domain.JSONMap, completedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE insight_jobs
		SET status = $1, result = $2, completed_at = $3
		WHERE id = $4`,
		string(domain.InsightStatusCompleted), result, completedAt, jobID)
	if err != nil {
		return fmt.Errorf("insight_repo.Complete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInsightJobNotFound
	}
	return nil
}

// Fail marks a job FAILED.
func (r *InsightRepository) Fail(ctx context.Context, jobID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE insight_jobs SET status = $1 WHERE id = $2`,
		string(domain.InsightStatusFailed), jobID); err != nil {
		return fmt.Errorf("insight_repo.Fail: %w", err)
	}
	return nil
}
