package handler

import (
	"net/http"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InsightHandler serves the asynchronous AI analysis endpoints. Jobs are
// accepted immediately and completed by the background worker; clients poll
// the job endpoint for the result.
type InsightHandler struct {
	insightSvc *service.InsightService
}

// NewInsightHandler creates an InsightHandler.
func NewInsightHandler(insightSvc *service.InsightService) *InsightHandler {
	return &InsightHandler{insightSvc: insightSvc}
}

// RequestCommentAnalysis godoc
// POST /api/ai/comment-analysis [JWT]
// Body: {"query":"what do viewers think of my editing","video_ids":["v1","v2"]}
func (h *InsightHandler) RequestCommentAnalysis(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CommentAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	job, err := h.insightSvc.RequestCommentAnalysis(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not enqueue analysis")
		return
	}
	respondSuccess(c, http.StatusAccepted, job)
}

// GetJob godoc
// GET /api/ai/jobs/:id [JWT]
func (h *InsightHandler) GetJob(c *gin.Context) {
	userID := middleware.GetUserID(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_JOB_ID", "invalid job id")
		return
	}

	job, err := h.insightSvc.GetJob(c.Request.Context(), jobID, userID)
	if err != nil {
		switch {
		case err == domain.ErrForbidden:
			respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "this job does not belong to you")
		case domain.IsNotFound(err):
			respondError(c, http.StatusNotFound, "ERR_JOB_NOT_FOUND", domain.ErrInsightJobNotFound.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch job")
		}
		return
	}
	respondSuccess(c, http.StatusOK, job)
}

// ListMyJobs godoc
// GET /api/ai/jobs?page=1&limit=20 [JWT]
func (h *InsightHandler) ListMyJobs(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)

	jobs, err := h.insightSvc.ListMyJobs(c.Request.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not list jobs")
		return
	}
	respondList(c, jobs, len(jobs), page, limit)
}
