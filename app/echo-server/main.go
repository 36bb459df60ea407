package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"swisstination/app/echo-server/router"
	"swisstination/business/auth"
	"swisstination/business/category"
	"swisstination/business/destination"
	"swisstination/business/preference"
	"swisstination/business/recommender"
	"swisstination/business/review"
	"swisstination/internal/middleware"
	psqlRepo "swisstination/internal/repository/postgres"
	redisRepo "swisstination/internal/repository/redis"
	"swisstination/internal/rest"
	"swisstination/pkg/config"
	"swisstination/pkg/database"
	redisdb "swisstination/pkg/database/redis"
	"swisstination/pkg/logger"
	"swisstination/pkg/metrics"
	"swisstination/pkg/utils"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Swisstination", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis is optional: without it tokens are validated by signature only
	// and logout cannot revoke them early.
	var tokenRepo auth.TokenRepository
	var tokenValidator middleware.TokenValidator
	redisClient, err := redisdb.InitRedis(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without session store", "error", err)
	} else {
		logger.Info("Redis connected successfully")
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
	}

	// The trained artifact is optional too: without it every request is
	// served by the deterministic fallback ranker.
	artifact, err := recommender.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		logger.Warn("Model artifact unavailable, running in fallback mode",
			"path", cfg.Model.ArtifactPath, "error", err)
		artifact = nil
	} else {
		logger.Info("Model artifact loaded",
			"factors", artifact.Factors, "version", artifact.Version)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	destinationRepo := psqlRepo.NewDestinationRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)

	// Init service
	tokenTTL := time.Duration(cfg.JWT.ExpiryMinutes) * time.Minute
	authService := auth.NewAuthService(userRepo, tokenRepo, validate, tokenTTL)
	categoryService := category.NewCategoryService(categoryRepo)
	destinationService := destination.NewDestinationService(destinationRepo)
	reviewService := review.NewReviewService(reviewRepo, destinationRepo)
	preferenceService := preference.NewPreferenceService(preferenceRepo)
	recommenderService := recommender.NewService(artifact, destinationRepo, reviewRepo)
	recommenderService.SetMinInteractions(cfg.Model.MinInteractions)

	if tokenRepo != nil {
		tokenValidator = authService
	}

	// Init handler
	userHandler := rest.NewUserHandler(authService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	destinationHandler := rest.NewDestinationHandler(destinationService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)
	recommendationHandler := rest.NewRecommendationHandler(recommenderService, preferenceService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := router.AuthRequired(tokenValidator)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, userHandler, authRequired)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupDestinationRoutes(api, destinationHandler)
	router.SetupReviewRoutes(api, reviewHandler, authRequired)
	router.SetupPreferenceRoutes(api, preferenceHandler, authRequired)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":       "ok",
			"model_loaded": recommenderService.ModelAvailable(),
		})
	})
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Server stopped")
}
