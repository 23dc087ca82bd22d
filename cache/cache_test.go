package cache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Cache files live relative to the working directory, so every test runs in
// its own temp dir.
func chtmp(t *testing.T) {
	t.Helper()

	old, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestPath(t *testing.T) {
	assert.Equal(t, Path("/"), Path("/"))
	assert.NotEqual(t, Path("/"), Path("/blog"))

	assert.True(t, strings.HasPrefix(Path("/"), "cache/pages/home_"))
	assert.True(t, strings.HasPrefix(Path("/blog"), "cache/pages/blog_"))
	assert.True(t, strings.HasPrefix(Path("/projects/my-app"), "cache/pages/projects_my-app_"))
	assert.True(t, strings.HasSuffix(Path("/blog"), ".html"))
}

func TestWriteReadInvalidate(t *testing.T) {
	chtmp(t)

	_, found := Read("/blog", time.Minute)
	assert.False(t, found)

	assert.NoError(t, Write("/blog", "<p>hello</p>"))

	content, found := Read("/blog", time.Minute)
	assert.True(t, found)
	assert.Equal(t, "<p>hello</p>", content)

	assert.NoError(t, Invalidate("/blog"))

	_, found = Read("/blog", time.Minute)
	assert.False(t, found)

	// Invalidating a page that was never cached is not an error.
	assert.NoError(t, Invalidate("/blog"))
}

func TestReadExpired(t *testing.T) {
	chtmp(t)

	assert.NoError(t, Write("/blog", "<p>old</p>"))

	_, found := Read("/blog", 0)
	assert.False(t, found)
}

func TestInvalidateAll(t *testing.T) {
	chtmp(t)

	assert.NoError(t, Write("/", "home"))
	assert.NoError(t, Write("/blog", "blog"))

	assert.NoError(t, InvalidateAll())

	_, found := Read("/", time.Minute)
	assert.False(t, found)
	_, found = Read("/blog", time.Minute)
	assert.False(t, found)
}

func TestMiddlewareCachesPublicPages(t *testing.T) {
	chtmp(t)
	gin.SetMode(gin.TestMode)

	hits := 0
	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/blog", func(c *gin.Context) {
		hits++
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<p>rendered</p>"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog", nil))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "<p>rendered</p>", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog", nil))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "<p>rendered</p>", w.Body.String())

	assert.Equal(t, 1, hits)
}

func TestMiddlewareSkipsQueryStrings(t *testing.T) {
	chtmp(t)
	gin.SetMode(gin.TestMode)

	hits := 0
	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/", func(c *gin.Context) {
		hits++
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("home"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/?sent=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/?sent=1", nil))

	assert.Equal(t, 2, hits)
}

func TestMiddlewareIgnoresAdminPaths(t *testing.T) {
	chtmp(t)
	gin.SetMode(gin.TestMode)

	hits := 0
	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/admin/projects", func(c *gin.Context) {
		hits++
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("admin"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/projects", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/projects", nil))

	assert.Equal(t, 2, hits)

	_, found := Read("/admin/projects", time.Minute)
	assert.False(t, found)
}

func TestMiddlewareSkipsNonOKResponses(t *testing.T) {
	chtmp(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/blog/:slug", func(c *gin.Context) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("not found"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/blog/nope", nil))

	_, found := Read("/blog/nope", time.Minute)
	assert.False(t, found)
}
