package main

import (
	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the login route: CAS ticket validation hits an
	// external server, so repeat attempts are throttled per IP.
	loginLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "tigertaxi"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// User settings
			protected.GET("/users/:netid/settings", svc.userHandler.GetSettings)
			protected.POST("/users/:netid/settings", svc.userHandler.UpdateSettings)

			// Rides
			protected.GET("/rides", svc.rideHandler.Search)
			protected.POST("/rides", svc.rideHandler.Create)
			protected.GET("/rides/mine", svc.rideHandler.MyRides)
			protected.POST("/rides/:id/leave", svc.rideHandler.Leave)

			// Ride requests
			protected.POST("/rides/:id/requests", svc.requestHandler.Create)
			protected.POST("/ride-requests/:id/accept", svc.requestHandler.Accept)
			protected.POST("/ride-requests/:id/reject", svc.requestHandler.Reject)
			protected.POST("/ride-requests/:id/cancel", svc.requestHandler.Cancel)

			// Riders
			protected.POST("/riders/:id/remove", svc.riderHandler.Remove)
		}
	}
}
