package handler

import (
	"net/http"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompatibilityHandler serves the creator↔target compatibility endpoints.
type CompatibilityHandler struct {
	compatibilitySvc *service.CompatibilityService
}

// NewCompatibilityHandler creates a CompatibilityHandler.
func NewCompatibilityHandler(compatibilitySvc *service.CompatibilityService) *CompatibilityHandler {
	return &CompatibilityHandler{compatibilitySvc: compatibilitySvc}
}

// Recalculate godoc
// POST /api/compatibility/recalculate [JWT, CREATOR]
// Body: {"target_id":"<uuid>","target_type":"BRAND"}
func (h *CompatibilityHandler) Recalculate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.RecalculateCompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	score, err := h.compatibilitySvc.Recalculate(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidTargetType:
			respondError(c, http.StatusBadRequest, "ERR_INVALID_TARGET_TYPE", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not calculate compatibility")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, score)
}

// GetForCreator godoc
// GET /api/compatibility/creator/:id
func (h *CompatibilityHandler) GetForCreator(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_CREATOR_ID", "invalid creator id")
		return
	}

	score, err := h.compatibilitySvc.GetForCreator(c.Request.Context(), creatorID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "no compatibility score for this creator")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not load compatibility score")
		return
	}
	respondSuccess(c, http.StatusOK, score)
}
