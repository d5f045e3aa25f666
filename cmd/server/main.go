package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/config"
	"github.com/vlearn/vlearn-backend/internal/generation"
	"github.com/vlearn/vlearn-backend/internal/groq"
	"github.com/vlearn/vlearn-backend/internal/logger"
	"github.com/vlearn/vlearn-backend/internal/request_tracking"
	"github.com/vlearn/vlearn-backend/internal/storage/pg"
	"github.com/vlearn/vlearn-backend/internal/users"
)

func main() {
	config.LoadConfig()

	startupLogger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		TimeFormat:      time.Kitchen,
	})

	appLogger := logger.New(logger.FromConfig(config.AppConfig.LogLevel, config.AppConfig.LogFormat))

	startupLogger.Info("Setting Gin mode", "mode", config.AppConfig.GinMode)
	gin.SetMode(config.AppConfig.GinMode)

	// Generation task config (models, sampling, prompt templates).
	genConfig, err := config.LoadGenerationConfig(config.AppConfig.GenerationConfigFile)
	if err != nil {
		startupLogger.Fatal("Failed to load generation config", "error", err)
	}

	if config.AppConfig.GroqAPIKey == "" {
		startupLogger.Warn("⚠️  GROQ_API_KEY is not set; every generation request will be served from local fallbacks")
	}
	groqClient := groq.NewClient(config.AppConfig.GroqBaseURL, config.AppConfig.GroqAPIKey)

	// Usage tracking is a supporting concern. A broken database degrades it
	// to disabled rather than taking the generation endpoints down.
	var trackingService *request_tracking.Service
	db, err := pg.InitDatabase(config.AppConfig.DatabaseURL)
	if err != nil {
		startupLogger.Warn("⚠️  usage tracking disabled: database unavailable", "error", err)
	} else {
		trackingService = request_tracking.NewService(request_tracking.NewPGStore(db.DB), appLogger)
	}

	tokenValidator, err := newTokenValidator(config.AppConfig, startupLogger)
	if err != nil {
		startupLogger.Fatal("Failed to initialize token validator", "error", err)
	}

	firebaseAuth, err := auth.NewFirebaseAuthMiddleware(tokenValidator)
	if err != nil {
		startupLogger.Fatal("Failed to initialize auth middleware", "error", err)
	}

	// Firestore backs the user profile endpoints; without credentials those
	// routes are simply not registered.
	var firestoreClient *firestore.Client
	if config.AppConfig.FirebaseProjectID != "" && config.AppConfig.FirebaseCredJSON != "" {
		firestoreClient, err = firestore.NewClient(context.Background(),
			config.AppConfig.FirebaseProjectID,
			option.WithCredentialsJSON([]byte(config.AppConfig.FirebaseCredJSON)))
		if err != nil {
			startupLogger.Fatal("Failed to initialize Firestore client", "error", err)
		}
	} else {
		startupLogger.Warn("⚠️  user profile endpoints disabled: Firestore credentials not configured")
	}

	generationService := generation.NewService(groqClient, genConfig, appLogger)
	generationHandler := generation.NewHandler(generationService, trackingService, appLogger)

	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, x-request-id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(logger.RequestLoggingMiddleware(appLogger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(firebaseAuth.RequireAuth())
	{
		generate := api.Group("/generate")
		if trackingService != nil {
			generate.Use(request_tracking.RateLimitMiddleware(trackingService, appLogger))
		}
		{
			generate.POST("/course", generationHandler.GenerateCourse)
			generate.POST("/content", generationHandler.GenerateContent)
			generate.POST("/quiz", generationHandler.GenerateQuiz)
		}

		if firestoreClient != nil {
			usersHandler := users.NewHandler(users.NewFirestoreStore(firestoreClient), appLogger)
			api.POST("/users", usersHandler.CreateProfile)
			api.GET("/users/me", usersHandler.GetMe)
			api.PATCH("/users/me", usersHandler.UpdateMe)
		}

		if trackingService != nil {
			api.GET("/rate-limit/status", request_tracking.RateLimitStatusHandler(trackingService, appLogger))
		}
	}

	port := ":" + config.AppConfig.Port
	startupLogger.Info("🚀  vlearn backend listening on " + port)

	if config.AppConfig.RateLimitEnabled {
		mode := "BLOCKING"
		if config.AppConfig.RateLimitLogOnly {
			mode = "LOG-ONLY"
		}
		startupLogger.Info("🛡️  rate limiting enabled",
			"limit", config.AppConfig.RateLimitRequestsPerDay,
			"mode", mode)
	} else {
		startupLogger.Info("⚠️  rate limiting disabled")
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startupLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	startupLogger.Info("🛑 Shutting down server...")

	if trackingService != nil {
		trackingService.Shutdown()
		startupLogger.Info("✅ Usage tracking service shutdown complete")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.AppConfig.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		startupLogger.Fatal("Server forced to shutdown", "error", err)
	}

	if firestoreClient != nil {
		firestoreClient.Close()
	}
	if db != nil {
		db.DB.Close()
	}

	startupLogger.Info("✅ Server exited")
}

func newTokenValidator(cfg *config.Config, logger *log.Logger) (auth.TokenValidator, error) {
	switch cfg.ValidatorType {
	case "firebase":
		if cfg.FirebaseProjectID == "" {
			logger.Error("firebase project ID is required")
			return nil, errors.New("firebase project ID is required")
		}

		logger.Info("creating Firebase token validator", "project_id", cfg.FirebaseProjectID)
		tokenValidator, err := auth.NewFirebaseTokenValidator(context.Background(), cfg.FirebaseCredJSON)
		if err != nil {
			logger.Error("Failed to create Firebase token validator", "error", err)
			return nil, err
		}
		return tokenValidator, nil

	case "jwk":
		tokenValidator, err := auth.NewTokenValidator(cfg.JWTJWKSURL)
		if err != nil {
			logger.Error("Failed to create JWT token validator", "error", err)
			return nil, err
		}
		return tokenValidator, nil

	default:
		logger.Error("Invalid validator type", "validator_type", cfg.ValidatorType)
		return nil, errors.New("validator type must be either 'firebase' or 'jwk'")
	}
}
