package main

import (
	"transport-backend/internal/api/routes"
	"transport-backend/internal/config"
	"transport-backend/pkg/database"
	"transport-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer database.Disconnect(db.Client())

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	if status := redisClient.HealthCheck(); status.IsConnected {
		log.Infof("Redis connected at %s", status.ConnectionInfo)
	} else {
		log.Warnf("Redis connection failed: %s (will retry automatically)", status.Error)
	}

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, db, redisClient)

	// Start server
	log.Infof("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
