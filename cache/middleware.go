package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves public pages from the file cache and captures cache
// misses on the way out. Admin routes and anything with a query string are
// never cached.
func Middleware(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !isCacheablePath(path) || c.Request.URL.RawQuery != "" {
			c.Next()
			return
		}

		if cached, found := Read(path, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			c.Writer.Header().Get("Content-Type") == "text/html; charset=utf-8" {
			Write(path, writer.body.String())
		}
	}
}

// isCacheablePath limits caching to the public read-only pages.
func isCacheablePath(path string) bool {
	if path == "/" || path == "/blog" {
		return true
	}
	return strings.HasPrefix(path, "/blog/") || strings.HasPrefix(path, "/projects/")
}
