package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sshusain313/causeconnect-sub000/internal/config"
	"github.com/sshusain313/causeconnect-sub000/internal/handlers"
	"github.com/sshusain313/causeconnect-sub000/internal/middleware"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
)

// HandlerDependencies aggregates the handlers wired in cmd/api
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	CauseHandler        *handlers.CauseHandler
	SponsorshipHandler  *handlers.SponsorshipHandler
	ClaimHandler        *handlers.ClaimHandler
	OTPHandler          *handlers.OTPHandler
	DistributionHandler *handlers.DistributionHandler
	LocationHandler     *handlers.LocationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.SetProductionMode(cfg.IsProduction())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Causes are publicly browsable; the detail endpoint injects the
		// computed tote availability.
		public.GET("/causes", deps.CauseHandler.GetCauses)
		public.GET("/causes/:id", deps.CauseHandler.GetCauseByID)

		// Public submissions
		public.POST("/sponsorships", deps.SponsorshipHandler.CreateSponsorship)
		public.POST("/claims", deps.ClaimHandler.CreateClaim)

		// Email verification
		otp := public.Group("/otp")
		{
			otp.POST("/send", deps.OTPHandler.SendOTP)
			otp.POST("/verify", deps.OTPHandler.VerifyOTP)
		}

		public.GET("/distribution-locations", deps.LocationHandler.GetLocations)
	}

	// Authenticated routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/users/me", deps.UserHandler.GetMe)

		protected.POST("/causes", deps.CauseHandler.CreateCause)
		protected.PUT("/causes/:id", deps.CauseHandler.UpdateCause)

		protected.GET("/sponsorships", deps.SponsorshipHandler.GetSponsorships)
		protected.GET("/sponsorships/:id", deps.SponsorshipHandler.GetSponsorshipByID)

		distributions := protected.Group("/physical-distributions")
		{
			distributions.POST("", deps.DistributionHandler.CreateDistribution)
			distributions.GET("", deps.DistributionHandler.GetDistributions)
			distributions.GET("/:id", deps.DistributionHandler.GetDistributionByID)
			distributions.GET("/sponsorship/:sponsorshipId", deps.DistributionHandler.GetDistributionBySponsorship)
			distributions.PUT("/:id", deps.DistributionHandler.UpdateDistribution)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	{
		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/:id", deps.UserHandler.GetUserByID)
			users.DELETE("/:id", deps.UserHandler.DeleteUser)
		}

		admin.PATCH("/causes/:id/approve", deps.CauseHandler.ApproveCause)
		admin.PATCH("/causes/:id/reject", deps.CauseHandler.RejectCause)
		admin.DELETE("/causes/:id", deps.CauseHandler.DeleteCause)

		admin.PATCH("/sponsorships/:id/approve", deps.SponsorshipHandler.ApproveSponsorship)
		admin.PATCH("/sponsorships/:id/reject", deps.SponsorshipHandler.RejectSponsorship)
		admin.PUT("/sponsorships/:id", deps.SponsorshipHandler.UpdateSponsorship)
		admin.DELETE("/sponsorships/:id", deps.SponsorshipHandler.DeleteSponsorship)

		admin.GET("/claims", deps.ClaimHandler.GetClaims)
		admin.GET("/claims/:id", deps.ClaimHandler.GetClaimByID)
		admin.GET("/claims/cause/:causeId", deps.ClaimHandler.GetClaimsByCause)
		admin.PATCH("/claims/:id/status", deps.ClaimHandler.UpdateClaimStatus)

		locations := admin.Group("/distribution-locations")
		{
			locations.POST("", deps.LocationHandler.CreateLocation)
			locations.GET("/:id", deps.LocationHandler.GetLocationByID)
			locations.PUT("/:id", deps.LocationHandler.UpdateLocation)
			locations.POST("/:id/reconcile", deps.LocationHandler.ReconcileLocation)
			locations.DELETE("/:id", deps.LocationHandler.DeleteLocation)
		}

		admin.PATCH("/physical-distributions/:id/locations/:locationId/status", deps.DistributionHandler.UpdateLocationStatus)
		admin.DELETE("/physical-distributions/:id", deps.DistributionHandler.DeleteDistribution)
	}

	return router
}
