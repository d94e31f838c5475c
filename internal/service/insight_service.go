package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
)

// InsightService manages asynchronous AI analysis jobs. Submitting a job
// returns immediately with a PENDING record; the background worker claims
// pending jobs, produces a synthetic analysis result, and marks them
// COMPLETED.
type InsightService struct {
	insightRepo *repository.InsightRepository
}

// NewInsightService creates an InsightService.
func NewInsightService(insightRepo *repository.InsightRepository) *InsightService {
	return &InsightService{insightRepo: insightRepo}
}

// ──────────────────────────────────────────────────────────────────────────────
// Job submission & queries
// ──────────────────────────────────────────────────────────────────────────────

// RequestCommentAnalysis enqueues a comment-analysis job for the user.
func (s *InsightService) RequestCommentAnalysis(ctx context.Context, userID uuid.UUID, req domain.CommentAnalysisRequest) (*domain.InsightJob, error) {
	job := &domain.InsightJob{
		ID:        uuid.New(),
		UserID:    userID,
		JobType:   domain.InsightTypeCommentAnalysis,
		Status:    domain.InsightStatusPending,
		Query:     req.Query,
		VideoIDs:  req.VideoIDs,
		Result:    domain.JSONMap{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.insightRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("insight_service.RequestCommentAnalysis: %w", err)
	}
	return job, nil
}

// GetJob returns a job only if it belongs to userID.
func (s *InsightService) GetJob(ctx context.Context, jobID, userID uuid.UUID) (*domain.InsightJob, error) {
	job, err := s.insightRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("insight_service.GetJob: %w", err)
	}
	if job.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

// ListMyJobs returns paginated jobs for a user, newest first.
func (s *InsightService) ListMyJobs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.InsightJob, error) {
	jobs, err := s.insightRepo.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("insight_service.ListMyJobs: %w", err)
	}
	return jobs, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Worker
// ──────────────────────────────────────────────────────────────────────────────

// ProcessPending claims up to batchSize pending jobs and completes each one.
// Called by the scheduler loop. A single failing job does NOT abort the
// others; it is marked FAILED and the loop continues.
func (s *InsightService) ProcessPending(ctx context.Context, batchSize int) (int, error) {
	jobs, err := s.insightRepo.ClaimPending(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("insight_service.ProcessPending: claim: %w", err)
	}

	processed := 0
	for _, job := range jobs {
		result := s.analyze(job)
		if err := s.insightRepo.Complete(ctx, job.ID, result, time.Now().UTC()); err != nil {
			log.Printf("[insight] ERROR completing job %s: %v", job.ID, err)
			if failErr := s.insightRepo.Fail(ctx, job.ID); failErr != nil {
				log.Printf("[insight] ERROR marking job %s failed: %v", job.ID, failErr)
			}
			continue
		}
		processed++
	}
	return processed, nil
}

// analyze produces the synthetic analysis payload for a claimed job.
// Stands in for a real model call; same response shape.
func (s *InsightService) analyze(job *domain.InsightJob) domain.JSONMap {
	sentiments := []string{"positive", "neutral", "mixed", "negative"}
	themes := []string{
		"editing quality", "upload consistency", "audio levels",
		"thumbnail style", "video length", "community engagement",
	}
	rand.Shuffle(len(themes), func(i, j int) { themes[i], themes[j] = themes[j], themes[i] })

	return domain.JSONMap{
		"query":             job.Query,
		"videos_analyzed":   len(job.VideoIDs),
		"comments_analyzed": 500 + rand.Intn(4500),
		"overall_sentiment": sentiments[rand.Intn(len(sentiments))],
		"sentiment_score":   0.3 + rand.Float64()*0.6,
		"top_themes":        themes[:3],
		"summary": fmt.Sprintf(
			"Viewers respond most strongly to %s; %s is the most requested improvement.",
			themes[0], themes[1],
		),
	}
}
