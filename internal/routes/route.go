package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/container"
	"github.com/stackstay/stayd/internal/handlers"
	"github.com/stackstay/stayd/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "stackstay-settlement",
			})
		})

		// The session endpoint stands in for the wallet gateway locally;
		// production deployments validate gateway tokens via JWKS instead.
		if !container.Config.IsProduction() {
			v1.POST("/auth/session", handlers.CreateSession(container.Config))
		}
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))

	protected.GET("/balance", handlers.GetBalance(container.EscrowService))

	propertyRoutes := protected.Group("/properties")
	{
		propertyRoutes.POST("", handlers.ListPropertyHandler(container.EscrowService))
		propertyRoutes.GET("", handlers.ListProperties(container.EscrowService))
		propertyRoutes.GET("/:id", handlers.GetProperty(container.EscrowService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("", handlers.BookPropertyHandler(container.EscrowService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.EscrowService))
		bookingRoutes.POST("/:id/release", handlers.ReleasePayment(container.EscrowService))
		bookingRoutes.POST("/:id/cancel", handlers.CancelBooking(container.EscrowService))
		bookingRoutes.GET("/:id/dispute", handlers.GetBookingDispute(container.DisputeService))
	}

	disputeRoutes := protected.Group("/disputes")
	{
		disputeRoutes.POST("", handlers.RaiseDisputeHandler(container.DisputeService))
		disputeRoutes.GET("/:id", handlers.GetDispute(container.DisputeService))
		disputeRoutes.GET("/:id/status", handlers.GetDisputeStatus(container.DisputeService))
		disputeRoutes.POST("/:id/resolve", handlers.ResolveDisputeHandler(container.DisputeService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("", handlers.SubmitReviewHandler(container.ReputationService))
		reviewRoutes.GET("/:id", handlers.GetReview(container.ReputationService))
	}

	badgeRoutes := protected.Group("/badges")
	{
		badgeRoutes.POST("", handlers.MintBadgeHandler(container.BadgeService))
		badgeRoutes.GET("/:id", handlers.GetBadge(container.BadgeService))
		badgeRoutes.GET("/:id/uri", handlers.GetTokenURI(container.BadgeService))
	}

	protected.GET("/badge-types/:type", handlers.GetBadgeTypeInfo(container.BadgeService))

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/:principal/stats", handlers.GetUserStats(container.ReputationService))
		userRoutes.GET("/:principal/rating", handlers.GetUserAverageRating(container.ReputationService))
		userRoutes.GET("/:principal/badges/:type", handlers.GetUserBadge(container.BadgeService))
	}

	return r
}
