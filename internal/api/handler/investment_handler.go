package handler

import (
	"net/http"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/gin-gonic/gin"
)

// InvestmentHandler serves the investor-facing portfolio endpoints.
type InvestmentHandler struct {
	investmentSvc *service.InvestmentService
}

// NewInvestmentHandler creates an InvestmentHandler.
func NewInvestmentHandler(investmentSvc *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentSvc: investmentSvc}
}

// GetMyInvestments godoc
// GET /api/investments/me?page=1&limit=20 [JWT]
func (h *InvestmentHandler) GetMyInvestments(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)

	investments, err := h.investmentSvc.GetMyInvestments(c.Request.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch investments")
		return
	}
	respondList(c, investments, len(investments), page, limit)
}

// GetMyPayouts godoc
// GET /api/investments/me/payouts?page=1&limit=20 [JWT]
func (h *InvestmentHandler) GetMyPayouts(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)

	payouts, err := h.investmentSvc.GetMyPayouts(c.Request.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch payouts")
		return
	}
	respondList(c, payouts, len(payouts), page, limit)
}
