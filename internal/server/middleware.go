package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasneemkhan/portfolio/internal/visitors"
)

const requestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			logger.Error("request failed", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic serving request",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// untrackedPrefixes are never counted as page views.
var untrackedPrefixes = []string{
	"/static/",
	EventPath + "/",
	"/healthz",
	"/favicon",
}

// visitorTracking counts successful GET page views, skipping assets and
// visitors who send Do Not Track.
func visitorTracking(tracker HitTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			return
		}
		if c.Writer.Status() != http.StatusOK {
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				return
			}
		}

		tracker.Track(visitors.Hit{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
		})
	}
}
