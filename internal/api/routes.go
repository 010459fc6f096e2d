package api

import (
	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/handlers"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/middlewares"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
)

// SetupRoutes attaches all middleware and routes to the engine. Middleware
// order matters: recovery first, then CORS, headers, request logging, and
// the auth gate before any route handler runs.
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(&services.GetConfig().API.CORS))
	router.Use(middlewares.Security())
	router.Use(middlewares.RequestLogging(services.GetLogger()))
	router.Use(middlewares.Gate(services))

	// Probes
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.Ping)

	// Page shells
	router.GET("/", handlers.LoginPage)
	router.GET("/login", handlers.LoginPage)
	router.GET("/dashboard", handlers.DashboardPage)
	router.Static("/static", "./web/static")

	// Authentication endpoints share the tighter auth limiter
	authGroup := router.Group("/api/auth")
	authGroup.Use(middlewares.RateLimit(services.AuthLimiter()))
	{
		authGroup.POST("/login", handlers.Login(services))
		authGroup.POST("/refresh", handlers.RefreshToken(services))
		authGroup.POST("/logout", handlers.Logout(services))
		authGroup.GET("/verify", handlers.VerifySession(services))
		authGroup.GET("/csrf", handlers.CSRFToken(services))
	}

	// Authenticated API surface
	apiGroup := router.Group("/api")
	apiGroup.Use(middlewares.RateLimit(services.APILimiter()))
	apiGroup.Use(middlewares.CSRFProtect(services))
	{
		candidates := apiGroup.Group("/candidates")
		{
			candidates.GET("", handlers.ListCandidates(services))
			candidates.POST("", handlers.CreateCandidate(services))
			candidates.GET("/:id", handlers.GetCandidate(services))
			candidates.PUT("/:id", handlers.UpdateCandidate(services))
			candidates.DELETE("/:id", middlewares.RoleRequired(auth.RoleManager), handlers.DeleteCandidate(services))
		}

		jobs := apiGroup.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobs(services))
			jobs.POST("", handlers.CreateJob(services))
			jobs.GET("/:id", handlers.GetJob(services))
			jobs.PUT("/:id", handlers.UpdateJob(services))
			jobs.DELETE("/:id", middlewares.RoleRequired(auth.RoleManager), handlers.DeleteJob(services))
		}

		clients := apiGroup.Group("/clients")
		{
			clients.GET("", handlers.ListClients(services))
			clients.POST("", handlers.CreateClient(services))
			clients.GET("/:id", handlers.GetClient(services))
			clients.PUT("/:id", handlers.UpdateClient(services))
			clients.DELETE("/:id", middlewares.RoleRequired(auth.RoleManager), handlers.DeleteClient(services))
		}

		apiGroup.GET("/activity", handlers.ListActivity(services))

		uploads := apiGroup.Group("/uploads")
		uploads.Use(middlewares.RateLimit(services.UploadLimiter()))
		{
			uploads.POST("", handlers.RegisterUpload(services))
			uploads.GET("", handlers.ListUploads(services))
		}
	}

	// Admin surface
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middlewares.RateLimit(services.APILimiter()))
	adminGroup.Use(middlewares.CSRFProtect(services))
	adminGroup.Use(middlewares.AdminRequired())
	{
		adminGroup.GET("/users", handlers.ListUsers(services))
		adminGroup.POST("/users", handlers.CreateUser(services))
		adminGroup.PUT("/users/:id/role", handlers.UpdateUserRole(services))
	}

	// Realtime activity feed
	router.GET("/ws/activity", middlewares.WSAuthRequired(services), handlers.ActivityFeed(services))
}
