package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/db"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/handlers"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/middleware"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/pipeline"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file")
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Load MongoDB URI, default to localhost
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	client, err := db.Connect(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := client.Database("fronthaul_analyzer")
	batchesColl := database.Collection("batches")
	reportsColl := database.Collection("reports")

	analysisPipeline := pipeline.New(cfg)

	router := gin.Default()

	// Add security middleware
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestValidationMiddleware())

	// Add rate limiting (6000 requests per minute, burst of 10)
	router.Use(middleware.RateLimitMiddleware(6000, 10))

	v1 := router.Group("/v1")
	{
		// Batch lifecycle endpoints
		v1.POST("/batches", handlers.CreateBatchHandler(batchesColl))
		v1.GET("/batches", handlers.GetBatchesHandler(batchesColl))
		v1.GET("/batches/:id", handlers.GetBatchHandler(batchesColl))
		v1.PUT("/batches/:id", handlers.UpdateBatchHandler(batchesColl))
		v1.DELETE("/batches/:id", handlers.DeleteBatchHandler(batchesColl, reportsColl))
		v1.POST("/batches/:id/upload", handlers.UploadTelemetryHandler(batchesColl))
		v1.POST("/batches/:id/process", handlers.ProcessBatchHandler(analysisPipeline, batchesColl, reportsColl))

		// Analysis report endpoints
		v1.GET("/batches/:id/topology", handlers.GetTopologyHandler(batchesColl, reportsColl))
		v1.GET("/batches/:id/cells/bursts", handlers.GetBurstStatsHandler(batchesColl, reportsColl))
		v1.GET("/batches/:id/links", handlers.GetLinkOptimizationsHandler(batchesColl, reportsColl))
		v1.GET("/batches/:id/links/:linkId/resilience", handlers.GetLinkResilienceHandler(batchesColl, reportsColl))
		v1.GET("/batches/:id/recommendations", handlers.GetRecommendationsHandler(batchesColl, reportsColl))
		v1.GET("/batches/:id/sustainability", handlers.GetSustainabilityHandler(batchesColl, reportsColl))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
