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
	"github.com/shopspring/decimal"
)

// ProjectRepository handles all database operations for Projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project row.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects
			(id, creator_id, title, description, goal_amount, min_investment, projected_roi, status, created_at)
		VALUES
			(:id, :creator_id, :title, :description, :goal_amount, :min_investment, :projected_roi, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("project_repo.Create: %w", err)
	}
	return nil
}

// GetByID fetches a project by its primary key.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p, `SELECT * FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("project_repo.GetByID: %w", err)
	}
	return &p, nil
}

// List returns a paginated slice of projects filtered by optional status and
// sorted by the given column ("created_at" or "goal_amount", descending).
// status="" returns all statuses.
// Returns (projects, totalCount, error).
func (r *ProjectRepository) List(ctx context.Context, limit, offset int, status, sortBy string) ([]*domain.Project, int, error) {
	sortCol := "created_at"
	if sortBy == "goal" {
		sortCol = "goal_amount"
	}

	var projects []*domain.Project
	var total int

	if status != "" {
		if err := r.db.GetContext(ctx, &total,
			`SELECT COUNT(*) FROM projects WHERE status = $1`, status); err != nil {
			return nil, 0, fmt.Errorf("project_repo.List count: %w", err)
		}
		if err := r.db.SelectContext(ctx, &projects,
			`SELECT * FROM projects WHERE status = $1 ORDER BY `+sortCol+` DESC LIMIT $2 OFFSET $3`,
			status, limit, offset); err != nil {
			return nil, 0, fmt.Errorf("project_repo.List select: %w", err)
		}
	} else {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects`); err != nil {
			return nil, 0, fmt.Errorf("project_repo.List count: %w", err)
		}
		if err := r.db.SelectContext(ctx, &projects,
			`SELECT * FROM projects ORDER BY `+sortCol+` DESC LIMIT $1 OFFSET $2`,
			limit, offset); err != nil {
			return nil, 0, fmt.Errorf("project_repo.List select: %w", err)
		}
	}
	return projects, total, nil
}

// GetByCreator returns all projects owned by a creator, most recent first.
func (r *ProjectRepository) GetByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.SelectContext(ctx, &projects,
		`SELECT * FROM projects WHERE creator_id = $1 ORDER BY created_at DESC`,
		creatorID)
	if err != nil {
		return nil, fmt.Errorf("project_repo.GetByCreator: %w", err)
	}
	return projects, nil
}

// CompleteDistribution performs the conditional LIVE→COMPLETED transition
// inside an existing transaction, recording the reported revenue and the
// completion timestamp.
//
// The WHERE status='LIVE' guard is the single-writer primitive: of any number
// of concurrent distribution attempts, exactly one updates a row. A zero
// rows-affected result means the transition was already taken and the caller
// must roll back its payout batch.
func (r *ProjectRepository) CompleteDistribution(ctx context.Context, tx *sqlx.Tx, projectID uuid.UUID, totalRevenue decimal.Decimal, completedAt time.Time) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET status        = $1,
		    total_revenue = $2,
		    completed_at  = $3
		WHERE id = $4 AND status = $5`,
		string(domain.ProjectStatusCompleted), totalRevenue, completedAt,
		projectID, string(domain.ProjectStatusLive))
	if err != nil {
		return fmt.Errorf("project_repo.CompleteDistribution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDistributionConflict
	}
	return nil
}
