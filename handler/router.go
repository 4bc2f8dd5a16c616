package handler

import (
	"net/http"
	"time"

	"github.com/Aashish23092/default-report-dataset/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter wires the HTTP surface: health, report extraction and metrics.
func NewRouter(logger zerolog.Logger, reports *ReportHandler, recorder *metrics.Recorder, maxFileSize int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	if maxFileSize > 0 {
		router.MaxMultipartMemory = maxFileSize
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Default Report Dataset",
		})
	})
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := router.Group("/api/v1")
	{
		reportsGroup := api.Group("/reports")
		{
			reportsGroup.POST("/extract", reports.Extract)
		}
	}
	return router
}

// requestLogger puts a request-scoped logger on the context and logs the outcome.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		reqLogger.Info().
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
	}
}
