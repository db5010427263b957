package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inkwellHTTP "inkwell/internal/controller/http"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/config"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkwell/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	interactionRepo := persistent.NewInteractionRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, s3Client, redisClient, log)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, s3Client, queueClient, log)
	interactionUseCase := usecase.NewInteractionUseCase(interactionRepo, postRepo, userRepo, redisClient, queueClient, log)

	// Initialize HTTP handlers
	authHandler := inkwellHTTP.NewAuthHandler(authUseCase)
	postHandler := inkwellHTTP.NewPostHandler(postUseCase)
	interactionHandler := inkwellHTTP.NewInteractionHandler(interactionUseCase)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	// Client bootstrap: editor license key and such
	api.GET("/config", func(c *gin.Context) {
		c.JSON(200, gin.H{"editor_api_key": cfg.EditorAPIKey})
	})

	// Routes reserved for anonymous callers
	guest := api.Group("/auth")
	guest.Use(middleware.GuestMiddleware(jwtService))
	{
		guest.POST("/register", authHandler.Register)
		guest.POST("/login", authHandler.Login)
	}

	// Identity resolution never requires auth; it answers null instead
	api.GET("/auth/me", authHandler.Me)

	// Public reads
	api.GET("/users/:id", authHandler.GetUser)
	api.GET("/posts", postHandler.ListPosts)
	// Detail fetch resolves the caller when a token is present so authors
	// can read their own inactive posts.
	api.GET("/posts/:id", middleware.OptionalAuthMiddleware(jwtService, redisClient), postHandler.GetPost)
	api.GET("/posts/:id/likes", interactionHandler.CountLikes)
	api.GET("/posts/:id/comments", interactionHandler.GetComments)
	api.GET("/files/view", postHandler.FileView)
	api.GET("/files/preview", postHandler.FilePreview)

	// Authenticated writes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService, redisClient))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.PATCH("/auth/me/prefs", authHandler.UpdatePrefs)
		authed.POST("/auth/me/avatar", authHandler.UploadAvatar)

		authed.POST("/posts", postHandler.CreatePost)
		authed.PUT("/posts/:id", postHandler.UpdatePost)
		authed.DELETE("/posts/:id", postHandler.DeletePost)

		authed.POST("/posts/:id/like", interactionHandler.ToggleLike)
		authed.POST("/posts/:id/comments", interactionHandler.CreateComment)

		authed.POST("/files", postHandler.UploadFile)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Inkwell starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Inkwell exited")
}
