package api

import (
	"net/http"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/handler"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api/middleware"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/ws"
	"github.com/gin-gonic/gin"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	AuthSvc          *service.AuthService
	ProjectSvc       *service.ProjectService
	InvestmentSvc    *service.InvestmentService
	DistributionSvc  *service.DistributionService
	CreatorSvc       *service.CreatorService
	InsightSvc       *service.InsightService
	CompatibilitySvc *service.CompatibilityService
	Hub              *ws.Hub
	Cfg              *config.Config
}

// SetupRouter creates and configures the main Gin engine with all routes,
// middleware, CORS, and rate limiting rules.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Health check ─────────────────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	userH := handler.NewUserHandler(deps.AuthSvc)
	projectH := handler.NewProjectHandler(deps.ProjectSvc, deps.InvestmentSvc, deps.DistributionSvc)
	investmentH := handler.NewInvestmentHandler(deps.InvestmentSvc)
	creatorH := handler.NewCreatorHandler(deps.CreatorSvc)
	insightH := handler.NewInsightHandler(deps.InsightSvc)
	compatibilityH := handler.NewCompatibilityHandler(deps.CompatibilitySvc)

	// ── JWT middleware (shared) ───────────────────────────────────────────────
	jwtMW := middleware.JWTMiddleware(deps.AuthSvc)

	// ── Rate limiters ─────────────────────────────────────────────────────────
	authRL := middleware.RateLimitMiddleware(10)   // 10 req/s per IP for auth endpoints
	investRL := middleware.RateLimitMiddleware(30) // 30 req/s per IP for ledger writes

	api := r.Group("/api")
	{
		// ── Auth (public, strict rate limit) ─────────────────────────────────
		auth := api.Group("/auth")
		auth.Use(authRL)
		{
			auth.POST("/register", userH.Register)
			auth.POST("/login", userH.Login)
			auth.POST("/refresh", userH.Refresh)
		}

		// ── Public catalogue ─────────────────────────────────────────────────
		api.GET("/projects/public", projectH.ListPublic)
		api.GET("/projects/:id", projectH.GetByID)
		api.GET("/projects/:id/investments", projectH.GetInvestments)
		api.GET("/projects/:id/payouts", projectH.GetPayouts)
		api.GET("/creators/:id", creatorH.GetProfile)
		api.GET("/brands", creatorH.ListBrands)
		api.GET("/discover/creators", creatorH.Discover)
		api.GET("/discover/brands", creatorH.ListBrands)
		api.GET("/compatibility/creator/:id", compatibilityH.GetForCreator)

		// ── Authenticated routes ──────────────────────────────────────────────
		authed := api.Group("")
		authed.Use(jwtMW)
		{
			// Profile
			authed.GET("/me", userH.Me)

			// Projects (creator surface)
			projects := authed.Group("/projects")
			{
				projects.POST("", middleware.CreatorOnly(), projectH.Create)
				projects.GET("/my", middleware.CreatorOnly(), projectH.ListMine)
				projects.POST("/:id/revenue-report", middleware.CreatorOnly(), projectH.RevenueReport)
				projects.POST("/:id/invest", investRL, projectH.Invest)
			}

			// Investor portfolio
			investments := authed.Group("/investments")
			{
				investments.GET("/me", investmentH.GetMyInvestments)
				investments.GET("/me/payouts", investmentH.GetMyPayouts)
			}

			// Creator profile
			creators := authed.Group("/creators")
			{
				creators.POST("", middleware.CreatorOnly(), creatorH.CreateProfile)
				creators.GET("/me", middleware.CreatorOnly(), creatorH.GetMyProfile)
				creators.PATCH("/me", middleware.CreatorOnly(), creatorH.UpdateMyProfile)
			}

			// Brand profile
			brands := authed.Group("/brands")
			{
				brands.POST("", middleware.BrandOnly(), creatorH.CreateBrand)
				brands.GET("/me", middleware.BrandOnly(), creatorH.GetMyBrand)
				brands.PATCH("/me", middleware.BrandOnly(), creatorH.UpdateMyBrand)
			}

			// Compatibility
			authed.POST("/compatibility/recalculate", middleware.CreatorOnly(), compatibilityH.Recalculate)

			// AI insights
			ai := authed.Group("/ai")
			{
				ai.POST("/comment-analysis", insightH.RequestCommentAnalysis)
				ai.GET("/jobs", insightH.ListMyJobs)
				ai.GET("/jobs/:id", insightH.GetJob)
			}
		}
	}

	// ── WebSocket ─────────────────────────────────────────────────────────────
	if deps.Hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			deps.Hub.ServeWs(c.Writer, c.Request)
		})
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware returns a gin middleware that sets appropriate CORS headers.
// In development all origins are allowed; in production only configured origins.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			// Development: allow any origin
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins))
			for _, o := range cfg.Server.AllowedOrigins {
				allowed[o] = true
			}
			if allowed[origin] {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
