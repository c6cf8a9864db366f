package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID or mints a new one and echoes it
// on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "request served",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// recovery turns a handler panic into the generic 500 body.
func recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, p any) {
		log.Error(c.Request.Context(), "panic recovered",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", p,
		)
		abortWithError(c, http.StatusInternalServerError, internalMessage)
	})
}
