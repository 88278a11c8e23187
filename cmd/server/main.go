package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DSchneidersAH/ai-fit-tool/internal/cache"
	"github.com/DSchneidersAH/ai-fit-tool/internal/config"
	"github.com/DSchneidersAH/ai-fit-tool/internal/database"
	"github.com/DSchneidersAH/ai-fit-tool/internal/errors"
	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
	"github.com/DSchneidersAH/ai-fit-tool/internal/frontend"
	"github.com/DSchneidersAH/ai-fit-tool/internal/history"
	"github.com/DSchneidersAH/ai-fit-tool/internal/middleware"
	"github.com/DSchneidersAH/ai-fit-tool/internal/monitoring"
	"github.com/DSchneidersAH/ai-fit-tool/internal/ratelimit"
	"github.com/DSchneidersAH/ai-fit-tool/internal/render"
	"github.com/DSchneidersAH/ai-fit-tool/internal/security"
	"github.com/DSchneidersAH/ai-fit-tool/internal/types"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		slog.Error("Failed to build profile registry", "error", err)
		os.Exit(1)
	}
	scorer := fit.NewScorer(registry.Scale(), cfg.Scoring.Mode)

	// Database and assessment history
	db, err := database.NewDB(cfg.Server.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer errors.SafeClose(db, "database")

	historyService := history.NewService(database.NewRepository(db), cfg.CacheTTL())
	historyService.StartRetentionPurge(24*time.Hour, time.Duration(cfg.Server.RetentionDays)*24*time.Hour)

	// Monitoring
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	// Rate limiting with Redis and in-memory fallback
	redisClient, err := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer errors.SafeClose(redisClient, "redis")

	rateLimiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimit:         cfg.RateLimit.IPLimitPerMin,
		EnableFallback:  cfg.RateLimit.EnableFallback,
		CleanupInterval: time.Hour,
	}, appMetrics)
	defer rateLimiter.Close()

	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// Security middleware setup
	securityConfig := security.DefaultSecurityConfig()
	securityConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	securityConfig.RequestTimeout = cfg.RequestTimeout()
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)

	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.CSPMiddleware())
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(securityMiddleware.GlobalRateLimit)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(rateLimiter.IPRateLimitMiddleware())

	compression := middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig())
	r.Use(compression.Handler())

	// Identical rating vectors produce identical scores, so assess responses
	// are cached by request body
	appCache := cache.NewCache(cfg.CacheTTL())
	r.Use(appCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"scoring":   string(cfg.Scoring.Mode),
			"metrics":   appMetrics.GetStats(),
		})
	})

	r.GET("/dimensions", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.DimensionsResponse{
			Scale:      registry.Scale(),
			Dimensions: registry.Dimensions(),
		})
	})

	r.GET("/profiles", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.ProfilesResponse{
			Scale:    registry.Scale(),
			Profiles: registry.Profiles(),
		})
	})

	assessLimit := rateLimiter.EndpointRateLimitMiddleware("assess", cfg.RateLimit.AssessPerMin)
	r.POST("/assess", assessLimit, func(c *gin.Context) {
		start := time.Now()

		var req types.AssessRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		task := fit.Vector(req.Values)

		results, err := scorer.ScoreAll(task, registry)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		ranked := fit.Rank(results)
		best, err := fit.Best(ranked)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		chart, err := render.BuildChart(registry, task, cfg.Chart)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementAssessment()
		appLogger.AssessmentLogger(best.Profile, best.Score, registry.NumDimensions(), time.Since(start), c.GetBool("cache_hit"))

		// Persist asynchronously so storage latency never delays the response
		ipAddress := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		go func() {
			if err := historyService.SaveAssessment(task, ranked, ipAddress, userAgent, req.Public); err != nil {
				slog.Error("Failed to save assessment", "error", err)
			}
		}()

		c.JSON(http.StatusOK, types.AssessResponse{
			Results: ranked,
			Best:    best,
			Chart:   chart,
		})
	})

	r.GET("/assessments/recent", func(c *gin.Context) {
		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
				limit = l
			}
		}

		response, err := historyService.Recent(limit)
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/assessments/recent", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve recent assessments"})
			return
		}

		c.JSON(http.StatusOK, response)
	})

	r.GET("/stats", func(c *gin.Context) {
		stats, err := historyService.Summary()
		if err != nil {
			appLogger.APIErrorLogger(err, "GET", "/stats", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
			return
		}

		c.JSON(http.StatusOK, stats)
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Operational endpoints
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"response_cache": appCache.Stats(),
			"history_cache":  historyService.GetCacheStats(),
			"compression":    compression.GetStats(),
		})
	})

	r.GET("/ratelimit/stats", rateLimiter.HandleRateLimitStatus())

	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": db.GetPoolStats(),
		})
	})

	// Performance profiling endpoints (development only)
	if os.Getenv("ENABLE_PROFILING") == "true" {
		slog.Info("Enabling performance profiling endpoints")
		r.GET("/debug/pprof/*filepath", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}

	// Embedded assessment UI
	distFS, err := frontend.GetDistFS()
	if err != nil {
		slog.Error("Failed to load embedded frontend", "error", err)
		os.Exit(1)
	}
	indexTemplate, err := frontend.LoadIndexTemplate(distFS)
	if err != nil {
		slog.Error("Failed to load index template", "error", err)
		os.Exit(1)
	}
	r.NoRoute(frontend.NewSPAHandler(distFS, indexTemplate))

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port, "scoring_mode", cfg.Scoring.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
