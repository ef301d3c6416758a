package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/telemetry"
)

// PipelineKey is the context key handlers use to record the processing state
// transition of a request, e.g. "RECEIVED->RESPONDED".
const PipelineKey = "pipelineTransition"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":          RequestIDFromContext(c),
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			"status":              c.Writer.Status(),
			"pipeline_transition": c.GetString(PipelineKey),
			"duration_ms":         float64(latency.Microseconds()) / 1000.0,
			"username":            UsernameFromContext(c),
			"client_ip":           c.ClientIP(),
			"user_agent":          c.Request.UserAgent(),
		})
	}
}
