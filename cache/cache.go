package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Path returns the cache file for a public page path.
func Path(pagePath string) string {
	hash := generateHash(pagePath)
	name := strings.Trim(strings.ReplaceAll(pagePath, "/", "_"), "_")
	if name == "" {
		name = "home"
	}
	return filepath.Join("cache", "pages", fmt.Sprintf("%s_%s.html", name, hash[:16]))
}

// generateHash generates an xxHash hash for the given string
func generateHash(s string) string {
	hash := xxhash.Sum64String(s)
	return fmt.Sprintf("%016x", hash)
}

// Write stores the rendered HTML for a page path.
func Write(pagePath, html string) error {
	if err := os.MkdirAll(filepath.Join("cache", "pages"), 0755); err != nil {
		return err
	}
	return os.WriteFile(Path(pagePath), []byte(html), 0644)
}

// Read returns the cached HTML for a page path if present and not expired.
func Read(pagePath string, maxAge time.Duration) (string, bool) {
	cachePath := Path(pagePath)

	info, err := os.Stat(cachePath)
	if err != nil {
		return "", false
	}

	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return "", false
	}

	return string(content), true
}

// Invalidate removes the cached rendering of a page path. Missing files are
// fine; the page just was not cached.
func Invalidate(pagePath string) error {
	err := os.Remove(Path(pagePath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InvalidateAll drops every cached page.
func InvalidateAll() error {
	return os.RemoveAll(filepath.Join("cache", "pages"))
}

// ClearOld removes cache files older than the specified duration.
func ClearOld(maxAge time.Duration) error {
	cacheRoot := filepath.Join("cache", "pages")

	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			return nil
		}

		if !strings.HasSuffix(path, ".html") {
			return nil
		}

		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}

		return nil
	})
}
