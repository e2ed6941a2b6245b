package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"

	"github.com/thomas11/blogcal/internal/server"
	"github.com/thomas11/blogcal/internal/site"
)

const watchInterval = 200 * time.Millisecond

func (a *app) newServeCmd() *cobra.Command {
	var (
		port   int
		watch  bool
		drafts bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve it locally",
		Long: `The serve command builds the site once and serves the public directory.
Files in <config dir>/assets are served under /assets. With --watch the site
is rebuilt whenever a post, a raw include or the theme changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := site.NewBuilder(a.conf, drafts, a.logger)
			if err := b.Build(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				dirs := []string{a.conf.SourceDir, a.conf.ThemeDir}
				go func() {
					if err := rebuildOnChange(ctx, b, dirs, a.logger); err != nil {
						a.logger.Error("Watcher stopped", "err", err)
					}
				}()
			}

			if !a.debug {
				gin.SetMode(gin.ReleaseMode)
			}
			r := server.NewServer(a.conf.PublicDir, a.conf.BaseDir, a.logger)
			return server.Run(ctx, fmt.Sprintf(":%d", port), r, a.logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 4000, "port to serve the site on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild the site on changes to the source and theme")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include posts marked as draft")
	return cmd
}

// rebuildOnChange rebuilds the site after every change below dirs until ctx
// is done. Missing dirs are skipped.
func rebuildOnChange(ctx context.Context, b *site.Builder, dirs []string, logger *log.Logger) error {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	watched := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Debug("Not watching missing directory", "dir", dir)
			continue
		}
		if err := w.AddRecursive(dir); err != nil {
			return err
		}
		logger.Info("Watching for changes", "dir", filepath.Clean(dir))
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("nothing to watch")
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				logger.Info("Change detected, rebuilding", "path", event.Path)
				if err := b.Build(); err != nil {
					logger.Error("Rebuild failed", "err", err)
				}
			case err := <-w.Error:
				logger.Error("Watcher error", "err", err)
			case <-w.Closed:
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		w.Wait()
		w.Close()
	}()

	return w.Start(watchInterval)
}
