package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps a single request body. Telemetry captures are large
// but a full batch should stay well under this.
const maxUploadBytes = 512 << 20

// RequestValidationMiddleware enforces the API's request conventions:
// JSON or multipart bodies on write methods, JSON responses only, and a
// hard cap on upload size.
func RequestValidationMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		method := c.Request.Method
		if method == "POST" || method == "PUT" || method == "PATCH" {
			contentType := c.GetHeader("Content-Type")
			if contentType != "" &&
				!strings.Contains(contentType, "application/json") &&
				!strings.Contains(contentType, "multipart/form-data") {
				c.JSON(http.StatusUnsupportedMediaType, gin.H{
					"error": "Content-Type must be application/json or multipart/form-data",
				})
				c.Abort()
				return
			}

			if c.Request.ContentLength > maxUploadBytes {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": "Request body too large",
				})
				c.Abort()
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
		}

		accept := c.GetHeader("Accept")
		if accept != "" && !strings.Contains(accept, "application/json") &&
			!strings.Contains(accept, "*/*") {
			c.JSON(http.StatusNotAcceptable, gin.H{
				"error": "API only supports application/json responses",
			})
			c.Abort()
			return
		}

		c.Next()
	})
}
