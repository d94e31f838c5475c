package handler

import (
	"net/http"
	"strconv"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectHandler serves project CRUD, investing, and revenue distribution
// endpoints.
type ProjectHandler struct {
	projectSvc      *service.ProjectService
	investmentSvc   *service.InvestmentService
	distributionSvc *service.DistributionService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(
	projectSvc *service.ProjectService,
	investmentSvc *service.InvestmentService,
	distributionSvc *service.DistributionService,
) *ProjectHandler {
	return &ProjectHandler{
		projectSvc:      projectSvc,
		investmentSvc:   investmentSvc,
		distributionSvc: distributionSvc,
	}
}

// Create godoc
// POST /api/projects [JWT, CREATOR]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not create project")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, project)
}

// ListPublic godoc
// GET /api/projects/public?status=LIVE&sort=created_at&page=1&limit=20
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	status := c.Query("status")
	sortBy := c.Query("sort")
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	views, total, err := h.projectSvc.ListPublic(c.Request.Context(), limit, offset, status, sortBy)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not list projects")
		return
	}
	respondList(c, views, total, page, limit)
}

// ListMine godoc
// GET /api/projects/my [JWT, CREATOR]
func (h *ProjectHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)

	views, err := h.projectSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not list projects")
		return
	}
	respondSuccess(c, http.StatusOK, views)
}

// GetByID godoc
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PROJECT_ID", "invalid project id")
		return
	}

	view, err := h.projectSvc.Get(c.Request.Context(), projectID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_PROJECT_NOT_FOUND", domain.ErrProjectNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch project")
		return
	}
	respondSuccess(c, http.StatusOK, view)
}

// Invest godoc
// POST /api/projects/:id/invest [JWT]
// Body: {"amount":"250.00"}
func (h *ProjectHandler) Invest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PROJECT_ID", "invalid project id")
		return
	}

	var body struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", "amount must be a positive decimal string")
		return
	}

	inv, err := h.investmentSvc.Record(c.Request.Context(), domain.RecordInvestmentRequest{
		ProjectID:  projectID,
		InvestorID: userID,
		Amount:     amount,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", err.Error())
		case domain.ErrBelowMinInvestment:
			respondError(c, http.StatusBadRequest, "ERR_BELOW_MIN_INVESTMENT", err.Error())
		case domain.ErrProjectCompleted:
			respondError(c, http.StatusConflict, "ERR_PROJECT_COMPLETED", err.Error())
		default:
			if domain.IsNotFound(err) {
				respondError(c, http.StatusNotFound, "ERR_PROJECT_NOT_FOUND", domain.ErrProjectNotFound.Error())
				return
			}
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not record investment")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, inv)
}

// RevenueReport godoc
// POST /api/projects/:id/revenue-report [JWT, CREATOR]
// Body: {"total_revenue":"5000.00"}
func (h *ProjectHandler) RevenueReport(c *gin.Context) {
	userID := middleware.GetUserID(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PROJECT_ID", "invalid project id")
		return
	}

	var body struct {
		TotalRevenue string `json:"total_revenue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	revenue, err := decimal.NewFromString(body.TotalRevenue)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", "total_revenue must be a positive decimal string")
		return
	}

	result, err := h.distributionSvc.Distribute(c.Request.Context(), projectID, userID, revenue)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", err.Error())
		case domain.ErrForbidden:
			respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "only the project creator can report revenue")
		case domain.ErrProjectCompleted:
			respondError(c, http.StatusConflict, "ERR_PROJECT_COMPLETED", err.Error())
		case domain.ErrDistributionConflict:
			respondError(c, http.StatusConflict, "ERR_DISTRIBUTION_CONFLICT", err.Error())
		case domain.ErrNoInvestments:
			respondError(c, http.StatusUnprocessableEntity, "ERR_NO_INVESTMENTS", err.Error())
		default:
			if domain.IsNotFound(err) {
				respondError(c, http.StatusNotFound, "ERR_PROJECT_NOT_FOUND", domain.ErrProjectNotFound.Error())
				return
			}
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not distribute revenue")
		}
		return
	}
	respondSuccess(c, http.StatusOK, result)
}

// GetInvestments godoc
// GET /api/projects/:id/investments
func (h *ProjectHandler) GetInvestments(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PROJECT_ID", "invalid project id")
		return
	}

	investments, err := h.investmentSvc.GetProjectInvestments(c.Request.Context(), projectID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_PROJECT_NOT_FOUND", domain.ErrProjectNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch investments")
		return
	}
	respondSuccess(c, http.StatusOK, investments)
}

// GetPayouts godoc
// GET /api/projects/:id/payouts
func (h *ProjectHandler) GetPayouts(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PROJECT_ID", "invalid project id")
		return
	}

	payouts, err := h.distributionSvc.GetProjectPayouts(c.Request.Context(), projectID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_PROJECT_NOT_FOUND", domain.ErrProjectNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch payouts")
		return
	}
	respondSuccess(c, http.StatusOK, payouts)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return
}
