// Package site reads the posts of a blog and writes everything derived from
// them into the public directory: pages, the post calendar, JSON-LD and
// feeds.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/otiai10/copy"

	"github.com/thomas11/blogcal/internal/calendar"
	"github.com/thomas11/blogcal/internal/config"
	"github.com/thomas11/blogcal/internal/feed"
	"github.com/thomas11/blogcal/internal/jsonld"
	"github.com/thomas11/blogcal/internal/output"
	"github.com/thomas11/blogcal/internal/post"
	"github.com/thomas11/blogcal/internal/tag"
)

// StaticDir is copied as-is into the public directory.
const StaticDir = "static"

type Site struct {
	posts  post.Posts
	conf   *config.Config
	logger *log.Logger
}

func ReadSite(conf *config.Config, drafts bool, logger *log.Logger) (*Site, error) {
	loc, _ := calendar.LoadLocation(conf.Timezone)
	expander := tag.NewExpander(conf.SourceDir, logger)
	reader := post.NewReader(conf.SourceDir, conf.Permalink, loc, expander, logger)

	posts, err := reader.ReadAll(drafts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Read posts", "count", len(posts), "drafts", drafts)

	return &Site{
		posts:  posts,
		conf:   conf,
		logger: logger,
	}, nil
}

func (s *Site) Posts() post.Posts {
	return s.posts
}

// RenderAll writes every generated file. Generators run in a fixed order and
// the first failure stops the build.
func (s *Site) RenderAll() error {
	out := output.NewDirWriter(s.conf.PublicDir)

	if err := s.renderPages(out); err != nil {
		return err
	}

	indexer := calendar.NewIndexer(s.conf.CalendarOptions(), out, s.logger)
	if err := indexer.Run(s.posts); err != nil {
		return fmt.Errorf("post calendar: %w", err)
	}

	emitter := jsonld.NewEmitter(jsonld.Site{
		URL:          s.conf.URL,
		Author:       s.conf.Author,
		DefaultImage: s.conf.DefaultImage,
	}, out, s.logger)
	if err := emitter.Run(s.posts); err != nil {
		return fmt.Errorf("json-ld: %w", err)
	}

	feeds := feed.NewGenerator(feed.Site{
		Title:       s.conf.Title,
		Description: s.conf.Description,
		URL:         s.conf.URL,
		Author:      s.conf.Author,
		Language:    s.conf.Language,
	}, feed.Options{
		RSS:        s.conf.Feed.RSS,
		Atom:       s.conf.Feed.Atom,
		PostLimit:  s.conf.Feed.PostLimit,
		Categories: s.conf.Feed.Categories,
		Env:        s.conf.Env,
	}, out, s.logger)
	if err := feeds.Run(s.posts); err != nil {
		return fmt.Errorf("feeds: %w", err)
	}

	return nil
}

func (s *Site) CopyStaticFiles() error {
	srcDir := filepath.Join(s.conf.SourceDir, StaticDir)
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		s.logger.Debug("No static files", "dir", srcDir)
		return nil
	}
	s.logger.Info("Copying static files", "from", srcDir, "to", s.conf.PublicDir)
	return copy.Copy(srcDir, s.conf.PublicDir)
}

// Builder runs complete builds. Builds are serialized so that a rebuild
// triggered by the watcher never overlaps a running one.
type Builder struct {
	mu     sync.Mutex
	conf   *config.Config
	drafts bool
	logger *log.Logger
}

func NewBuilder(conf *config.Config, drafts bool, logger *log.Logger) *Builder {
	return &Builder{
		conf:   conf,
		drafts: drafts,
		logger: logger,
	}
}

func (b *Builder) Build() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	site, err := ReadSite(b.conf, b.drafts, b.logger)
	if err != nil {
		return err
	}

	b.logger.Info("Writing site", "dir", b.conf.PublicDir, "posts", len(site.posts))
	if err := site.RenderAll(); err != nil {
		return err
	}
	if err := site.CopyStaticFiles(); err != nil {
		return fmt.Errorf("copying static files: %w", err)
	}
	b.logger.Info("Site generated", "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() *config.Config {
	return b.conf
}
