package main

import (
	"log"
	"time"

	"noteful-api/internal/config"
	"noteful-api/internal/database"
	"noteful-api/internal/handlers"
	"noteful-api/internal/middleware"
	"noteful-api/internal/repository"
	"noteful-api/pkg/auth"
	"noteful-api/pkg/cache"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to database and apply schema
	db, err := database.NewMySQLConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Optional Redis cache; nil disables caching
	var cacheService *cache.CacheService
	if cfg.CacheEnabled {
		cacheService = cache.NewCacheService(cache.CacheConfig{
			Host:       cfg.RedisHost,
			Port:       cfg.RedisPort,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			DefaultTTL: time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	authHandler := handlers.NewAuthHandler(userRepo, jwtManager)
	folderHandler := handlers.NewFolderHandler(folderRepo, cacheService)
	tagHandler := handlers.NewTagHandler(tagRepo, cacheService)
	noteHandler := handlers.NewNoteHandler(noteRepo, folderRepo, tagRepo, cacheService)

	// Setup Gin router
	r := gin.New()

	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "noteful-api",
		})
	})

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, cfg.AuthRateCleanup)
	authRate := middleware.RateLimitMiddleware(authLimiter)

	// Public routes: registration and login
	r.GET("/api/users", userHandler.GetUsers)
	r.POST("/api/users", authRate, userHandler.Register)
	r.POST("/api/login", authRate, authHandler.Login)

	// Protected routes: every handler below sees an authenticated
	// caller identity
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		notes := protected.Group("/notes")
		{
			notes.GET("", noteHandler.GetNotes)
			notes.GET("/:id", noteHandler.GetNote)
			notes.POST("", noteHandler.CreateNote)
			notes.PUT("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		folders := protected.Group("/folders")
		{
			folders.GET("", folderHandler.GetFolders)
			folders.GET("/:id", folderHandler.GetFolder)
			folders.POST("", folderHandler.CreateFolder)
			folders.PUT("/:id", folderHandler.UpdateFolder)
			folders.DELETE("/:id", folderHandler.DeleteFolder)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
