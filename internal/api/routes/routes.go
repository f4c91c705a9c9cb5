package routes

import (
	"transport-backend/internal/api/handlers"
	"transport-backend/internal/api/middleware"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/cache"
	"transport-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *redis.Client) {
	// Initialize repositories
	missionRepo := repository.NewMissionRepository(db)
	fuelRepo := repository.NewFuelRequestRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	if redisClient != nil {
		notificationService.SetCountCache(cache.NewUnreadCountCache(redisClient.GetClient(), cache.DefaultConfig()))
	}
	missionService := services.NewMissionService(missionRepo, notificationService)
	fuelService := services.NewFuelService(fuelRepo, userRepo, notificationService)
	reportService := services.NewReportService(reportRepo, userRepo, notificationService)
	workflowService := services.NewWorkflowService(reportService, missionRepo, fuelRepo)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	missionHandler := handlers.NewMissionHandler(missionService)
	fuelHandler := handlers.NewFuelHandler(fuelService)
	reportHandler := handlers.NewReportHandler(reportService, workflowService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, middleware.DefaultRateLimitConfig()))

	api.GET("/health", healthHandler.HealthCheck)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		// Missions (deployer workflow)
		deployer := protected.Group("/deployer")
		{
			deployer.POST("", missionHandler.CreateMission)
			deployer.GET("/deploy", missionHandler.GetAllMissions)
			deployer.PATCH("/acknowledge/:id", missionHandler.AcknowledgeMission)
			deployer.GET("/:email", missionHandler.GetMissionByEmail)
			deployer.DELETE("/delete/:email", missionHandler.DeleteMissionByEmail)
		}

		// Fuel requests
		fuel := protected.Group("/fuel")
		{
			fuel.POST("", fuelHandler.CreateFuelRequest)
			fuel.GET("", fuelHandler.GetAllFuelRequests)
			fuel.GET("/status", fuelHandler.GetReviewingFuelRequests)
			fuel.PATCH("/:id", fuelHandler.UpdateFuelStatus)
			fuel.GET("/:vehicleNo", fuelHandler.GetFuelRequestsByVehicleNo)
			fuel.DELETE("/:id", fuelHandler.DeleteFuelRequest)
		}

		// Completion reports
		report := protected.Group("/report")
		{
			report.POST("", reportHandler.CreateReport)
			report.GET("", reportHandler.GetAllReports)
			report.PATCH("/:id", reportHandler.UpdateDestStatus)
			report.GET("/:vehicleNo", reportHandler.GetReportsByVehicleNo)
		}

		// Terminal workflow step
		workflow := protected.Group("/workflow")
		{
			workflow.POST("/complete", reportHandler.CompleteMission)
		}

		// Notification feed
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/dead-letter", notificationHandler.GetDeadLetters)
			notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
			notifications.PATCH("/read/:id", notificationHandler.MarkAsRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		// User directory
		users := protected.Group("/users")
		{
			users.GET("/drivers/unassigned", userHandler.GetUnassignedDrivers)
			users.GET("/:email", userHandler.GetUserByEmail)
		}
	}
}
