package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"setsweet/config"
	"setsweet/jobs"
	"setsweet/routes"
	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env before config reads the environment.
	loadEnvFile()

	config.LoadConfig()
	cfg := config.AppConfig

	utils.InitLogger()

	// Initialize MongoDB client
	ctx, cancel := config.CreateContext(10 * time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	defer func() {
		disconnectCtx, disconnectCancel := config.CreateContext(5 * time.Second)
		defer disconnectCancel()
		if err = mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Printf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	if err = mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	utils.LogInfo("Connected to MongoDB successfully")

	db := mongoClient.Database(cfg.DatabaseName)
	config.DB = db

	container, err := routes.NewServiceContainer(db, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration, cfg.UploadDir, cfg.MaxScriptSize, cfg.MaxImageSize)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	router := gin.Default()
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Uploaded scripts and storyboard images are served back as static files.
	router.Static(services.URLPrefix, cfg.UploadDir)

	api := router.Group("/api")
	routes.SetupRoutes(api, container)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	if cfg.OrphanSweepInterval > 0 {
		sweeper := jobs.NewOrphanSweeper(db, container.StorageService, cfg.OrphanGracePeriod)
		go sweeper.Start(cfg.OrphanSweepInterval)
	}

	log.Printf("Starting SetSweet server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadEnvFile handles loading .env from the usual locations.
func loadEnvFile() {
	pwd, err := os.Getwd()
	if err != nil {
		log.Printf("Could not get working directory: %v", err)
		return
	}

	envPaths := []string{
		".env",
		"../.env",
		filepath.Join(pwd, ".env"),
		filepath.Join(filepath.Dir(pwd), ".env"),
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err == nil {
				log.Printf("Loaded environment variables from: %s", envPath)
				return
			}
		}
	}

	log.Println("No .env file found, using system environment variables")
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")

		allowOrigin := ""
		if len(allowedOrigins) == 0 {
			allowOrigin = "*"
		} else {
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == requestOrigin {
					allowOrigin = allowed
					break
				}
			}
			if allowOrigin == "" && requestOrigin == "" {
				allowOrigin = allowedOrigins[0]
			}
		}

		if allowOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
			c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
