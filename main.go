package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/contentops/seo-audit/fetcher"
	"github.com/contentops/seo-audit/metrics"
	"github.com/contentops/seo-audit/middleware"
	"github.com/contentops/seo-audit/parser"
	"github.com/contentops/seo-audit/seocheck"
	"github.com/contentops/seo-audit/stats"
)

var (
	log         = logrus.New()
	pageFetcher *fetcher.Client
	usageStats  *stats.Storage
)

func loadEnv() {
	// Try .env.development first (local development), then .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Info("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func envFloat(name string, fallback float64) float64 {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	loadEnv()
	setupGinMode()

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("DEV_MODE") == "true" {
		log.SetLevel(logrus.DebugLevel)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	var err error
	usageStats, err = stats.NewStorage(dataDir)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize stats storage")
	}
	defer usageStats.Shutdown()

	pageFetcher = fetcher.New(log)
	rateLimiter := middleware.NewRateLimiter(
		envFloat("RATE_LIMIT_RPS", 2),
		envInt("RATE_LIMIT_BURST", 5),
	)
	metrics.Register()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(log))
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/check", checkPage)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, usageStats.Snapshot(os.Getenv("DEV_MODE") == "true"))
		})
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	log.Infof("Server starting on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

type checkRequest struct {
	URL       string   `json:"url" binding:"required,url"`
	Keywords  []string `json:"keywords"`
	BrandName string   `json:"brandName"`
}

func checkPage(c *gin.Context) {
	start := time.Now()
	reqLog := log.WithField("request_id", middleware.RequestIDFrom(c))

	var request checkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		metrics.AuditsTotal.WithLabelValues("invalid_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: a valid url is required",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	html, err := pageFetcher.Fetch(ctx, request.URL)
	if err != nil {
		reqLog.WithError(err).WithField("url", request.URL).Warn("fetch failed")
		metrics.AuditsTotal.WithLabelValues("fetch_error").Inc()
		usageStats.RecordAudit(request.URL, float64(time.Since(start).Milliseconds()), true)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to fetch URL: " + err.Error(),
		})
		return
	}

	page, err := parser.Extract(html, request.URL)
	if err != nil {
		reqLog.WithError(err).WithField("url", request.URL).Error("extraction failed")
		metrics.AuditsTotal.WithLabelValues("parse_error").Inc()
		usageStats.RecordAudit(request.URL, float64(time.Since(start).Milliseconds()), true)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze page",
		})
		return
	}

	modules := seocheck.Evaluate(page, request.Keywords, request.BrandName)
	result := seocheck.BuildResult(page, modules)

	duration := time.Since(start)
	metrics.AuditsTotal.WithLabelValues("ok").Inc()
	metrics.AuditDuration.Observe(duration.Seconds())
	if result.MaxScore > 0 {
		metrics.ScoreRatio.Observe(float64(result.TotalScore) / float64(result.MaxScore))
	}
	usageStats.RecordAudit(request.URL, float64(duration.Milliseconds()), false)

	reqLog.WithFields(logrus.Fields{
		"url":         request.URL,
		"articleType": result.ArticleType,
		"score":       result.TotalScore,
		"maxScore":    result.MaxScore,
		"duration":    duration.String(),
	}).Info("audit completed")

	c.JSON(http.StatusOK, result)
}
