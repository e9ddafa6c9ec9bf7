package httpx

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID propagates the caller's X-Request-ID or mints one, so a
// sale can be traced from terminal to order row.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one access line per request. Health and swagger traffic
// is polling noise and stays out of the log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" || strings.HasPrefix(path, "/swagger/") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		line := "[http] rid=" + c.GetString("rid") +
			" uid=" + c.GetString("uid")
		log.Printf("%s %s %s status=%d bytes=%d dur=%s",
			line, c.Request.Method, path, c.Writer.Status(), c.Writer.Size(), time.Since(start))
	}
}
