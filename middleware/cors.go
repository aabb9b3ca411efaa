package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// defaultOrigins covers local frontend development when ALLOWED_ORIGINS
// is not set.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORSMiddleware adds CORS headers. Allowed origins come from the
// ALLOWED_ORIGINS env var (comma-separated), falling back to the local
// development defaults.
func CORSMiddleware() gin.HandlerFunc {
	allowed := defaultOrigins
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowed = nil
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed = append(allowed, o)
			}
		}
	}

	return gin.HandlerFunc(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, o := range allowed {
			if origin == o {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
