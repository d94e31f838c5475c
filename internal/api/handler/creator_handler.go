package handler

import (
	"net/http"
	"strconv"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatorHandler serves creator profile, brand profile, and discovery
// endpoints.
type CreatorHandler struct {
	creatorSvc *service.CreatorService
}

// NewCreatorHandler creates a CreatorHandler.
func NewCreatorHandler(creatorSvc *service.CreatorService) *CreatorHandler {
	return &CreatorHandler{creatorSvc: creatorSvc}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creators
// ──────────────────────────────────────────────────────────────────────────────

// CreateProfile godoc
// POST /api/creators [JWT, CREATOR]
func (h *CreatorHandler) CreateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	profile, err := h.creatorSvc.CreateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if domain.IsConflict(err) {
			respondError(c, http.StatusConflict, "ERR_PROFILE_EXISTS", domain.ErrProfileExists.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not create profile")
		return
	}
	respondSuccess(c, http.StatusCreated, profile)
}

// GetMyProfile godoc
// GET /api/creators/me [JWT, CREATOR]
func (h *CreatorHandler) GetMyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.creatorSvc.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_CREATOR_NOT_FOUND", domain.ErrCreatorNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch profile")
		return
	}
	respondSuccess(c, http.StatusOK, profile)
}

// UpdateMyProfile godoc
// PATCH /api/creators/me [JWT, CREATOR]
func (h *CreatorHandler) UpdateMyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var upd domain.CreatorUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	profile, err := h.creatorSvc.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_CREATOR_NOT_FOUND", domain.ErrCreatorNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not update profile")
		return
	}
	respondSuccess(c, http.StatusOK, profile)
}

// GetProfile godoc
// GET /api/creators/:id
func (h *CreatorHandler) GetProfile(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_CREATOR_ID", "invalid creator id")
		return
	}

	profile, err := h.creatorSvc.GetProfile(c.Request.Context(), creatorID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_CREATOR_NOT_FOUND", domain.ErrCreatorNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch creator")
		return
	}
	respondSuccess(c, http.StatusOK, profile)
}

// Discover godoc
// GET /api/discover/creators?genre=gaming&region=IN&search=tech&min_subs=10000
func (h *CreatorHandler) Discover(c *gin.Context) {
	page, limit := parsePagination(c)
	minSubs, _ := strconv.ParseInt(c.DefaultQuery("min_subs", "0"), 10, 64)

	q := domain.CreatorSearch{
		Genre:   c.Query("genre"),
		Region:  c.Query("region"),
		Search:  c.Query("search"),
		MinSubs: minSubs,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	creators, err := h.creatorSvc.Discover(c.Request.Context(), q)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not search creators")
		return
	}
	respondList(c, creators, len(creators), page, limit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Brands
// ──────────────────────────────────────────────────────────────────────────────

// CreateBrand godoc
// POST /api/brands [JWT, BRAND]
func (h *CreatorHandler) CreateBrand(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	brand, err := h.creatorSvc.CreateBrand(c.Request.Context(), userID, req)
	if err != nil {
		if domain.IsConflict(err) {
			respondError(c, http.StatusConflict, "ERR_PROFILE_EXISTS", domain.ErrProfileExists.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not create brand")
		return
	}
	respondSuccess(c, http.StatusCreated, brand)
}

// GetMyBrand godoc
// GET /api/brands/me [JWT, BRAND]
func (h *CreatorHandler) GetMyBrand(c *gin.Context) {
	userID := middleware.GetUserID(c)

	brand, err := h.creatorSvc.GetMyBrand(c.Request.Context(), userID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_BRAND_NOT_FOUND", domain.ErrBrandNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch brand")
		return
	}
	respondSuccess(c, http.StatusOK, brand)
}

// UpdateMyBrand godoc
// PATCH /api/brands/me [JWT, BRAND]
func (h *CreatorHandler) UpdateMyBrand(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var upd domain.BrandUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	brand, err := h.creatorSvc.UpdateBrand(c.Request.Context(), userID, upd)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_BRAND_NOT_FOUND", domain.ErrBrandNotFound.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not update brand")
		return
	}
	respondSuccess(c, http.StatusOK, brand)
}

// ListBrands godoc
// GET /api/brands?page=1&limit=20
func (h *CreatorHandler) ListBrands(c *gin.Context) {
	page, limit := parsePagination(c)

	brands, err := h.creatorSvc.ListBrands(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not list brands")
		return
	}
	respondList(c, brands, len(brands), page, limit)
}
