// Package server previews a built site over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// AssetsDir holds assets shared with a larger site. It lives next to the
// config file, outside the source dir, and is served under /assets.
const AssetsDir = "assets"

// NewServer serves publicDir and, under /assets, files from baseDir/assets.
func NewServer(publicDir, baseDir string, logger *log.Logger) *gin.Engine {
	r := gin.New()

	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(noCache)
	r.Use(AssetsMiddleware(baseDir))

	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(publicDir))))

	return r
}

// AssetsMiddleware answers /assets/<path> with baseDir/assets/<path> when
// that is a regular file. Anything else is passed on to the next handler.
func AssetsMiddleware(baseDir string) gin.HandlerFunc {
	root := filepath.Join(baseDir, AssetsDir)
	return func(c *gin.Context) {
		rel, ok := strings.CutPrefix(c.Request.URL.Path, "/"+AssetsDir+"/")
		if !ok || rel == "" {
			c.Next()
			return
		}
		for _, seg := range strings.Split(rel, "/") {
			if seg == ".." {
				c.Next()
				return
			}
		}

		assetPath := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(assetPath)
		if err != nil || !info.Mode().IsRegular() {
			c.Next()
			return
		}

		c.File(assetPath)
		c.Abort()
	}
}

// The preview is rebuilt while it is being browsed.
func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// Run serves handler on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("Serving site", "addr", "http://"+displayAddr(addr)+"/")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
