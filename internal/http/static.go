package http

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"oompa/backend/internal/logger"
)

// reservedPrefixes never fall back to the single-page app.
var reservedPrefixes = []string{"/api", "/metrics", "/swagger"}

const (
	indexCacheControl = "no-cache"
	assetCacheControl = "public, max-age=31536000, immutable"
)

// registerStatic serves the frontend build from dir. Unknown paths get
// index.html so client-side routes such as /oompas/3 resolve.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		logger.Debug("static assets disabled", "module", "http", "action", "register", "resource", "static", "result", "skipped")
		return
	}
	indexPath := filepath.Join(dir, "index.html")
	if info, err := os.Stat(indexPath); err != nil || info.IsDir() {
		logger.Warn("static index missing", "module", "http", "action", "register", "resource", "static", "result", "failed", "path", indexPath)
		return
	}

	logger.Info("static assets enabled", "module", "http", "action", "register", "resource", "static", "result", "ok", "dir", dir)

	serveIndex := func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", indexCacheControl)
		return c.File(indexPath)
	}

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if isReserved(requestPath) {
			return echo.ErrNotFound
		}

		clean := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
		if clean == "" || clean == "index.html" {
			return serveIndex(c)
		}

		candidate := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if strings.HasPrefix(clean, "assets/") {
				c.Response().Header().Set("Cache-Control", assetCacheControl)
			}
			return c.File(candidate)
		}

		logger.Debug("static fallback", "module", "http", "action", "fetch", "resource", "static", "result", "ok", "path", requestPath)
		return serveIndex(c)
	})
}

func isReserved(p string) bool {
	for _, prefix := range reservedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
