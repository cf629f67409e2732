package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergroups/pkg/logger"
)

// RequestLogger writes one structured line per handled request.
// Server errors are logged at error level, client errors at warn.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		lvl := logger.LevelInfo
		switch {
		case status >= 500:
			lvl = logger.LevelError
		case status >= 400:
			lvl = logger.LevelWarn
		}
		logger.Event(lvl).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", GetRequestID(c)).
			Msg("request handled")
	}
}
