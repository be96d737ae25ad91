package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"animalist/database"
	"animalist/internal/config"
	"animalist/internal/http-api/handler"
	"animalist/internal/http-api/middleware"
	"animalist/internal/http-api/repository"
	"animalist/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("closing database pool", "error", err)
		}
	}()

	// Repositories
	titleRepo := repository.NewTitleRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	titleService := service.NewTitleService(titleRepo, genreRepo, reviewRepo)
	genreService := service.NewGenreService(genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, logger)
	listService := service.NewListService(listRepo, titleRepo)
	statsService := service.NewStatsService(statsRepo, titleRepo, reviewRepo)

	router := setupRouter(cfg)
	auth := middleware.AuthMiddleware(authService, userRepo)

	handler.NewAuthHandler(authService).RegisterRoutes(router.Group("/auth"), auth)
	handler.NewTitleHandler(titleService).RegisterRoutes(router.Group("/titles"), auth)
	handler.NewGenreHandler(genreService).RegisterRoutes(router.Group("/genres"), auth)
	handler.NewReviewHandler(reviewService).RegisterRoutes(router.Group("/reviews"), auth)
	handler.NewListHandler(listService).RegisterRoutes(router.Group("/list"), auth)
	handler.NewStatsHandler(statsService).RegisterRoutes(router.Group("/stats"), auth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	if cfg.IsDevelopment() {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router.Use(limiter.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "AnimaList API",
			"endpoints": []string{
				"/auth", "/titles", "/genres", "/reviews", "/list", "/stats", "/health",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.GoEnv,
		})
	})

	return router
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
